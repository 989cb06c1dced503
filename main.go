// Cliente de terminal do helpdesk: autentica na API remota e abre as
// telas de chamados, usuários, relatórios e base de conhecimento.
package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"helpdesk_client/internal/api"
	"helpdesk_client/internal/config"
	"helpdesk_client/internal/logger"
	"helpdesk_client/internal/metrics"
	"helpdesk_client/internal/prefs"
	"helpdesk_client/internal/ui"
)

func init() {
	// Variáveis do .env complementam o ambiente; a ausência do arquivo
	// não é um erro.
	if err := godotenv.Load(); err != nil {
		log.Printf("arquivo .env não encontrado, usando variáveis do sistema")
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("HELPDESK_CONFIG"))
	if err != nil {
		log.Fatalf("configuração inválida: %v", err)
	}

	logWriter, err := logger.GetWriter(cfg.Logging.File, cfg.Logging.MaxSize, cfg.Logging.MaxAge.Std())
	if err != nil {
		log.Fatalf("erro ao criar escritor de logs: %v", err)
	}
	log.SetOutput(logWriter)

	m := metrics.NewMetrics()

	preferences, err := prefs.New(cfg.Prefs.File)
	if err != nil {
		log.Fatalf("erro ao carregar preferências: %v", err)
	}

	// Um endereço salvo nas preferências vence o da configuração.
	baseURL := cfg.API.BaseURL
	if override := preferences.BaseURL(); override != "" {
		baseURL = override
	}

	client := api.NewClient(baseURL, api.Timeouts{
		Light:  cfg.API.LightTimeout.Std(),
		Normal: cfg.API.Timeout.Std(),
		Upload: cfg.API.UploadTimeout.Std(),
		Health: cfg.API.HealthTimeout.Std(),
	}, m)

	program := tea.NewProgram(ui.New(client, cfg, preferences), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("erro na interface: %v", err)
	}

	if err := preferences.Save(); err != nil {
		log.Printf("erro ao salvar preferências: %v", err)
	}
	log.Printf("sessão encerrada: %v", m.Snapshot())
}
