package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SBertone10/prog1-equipo-0X/pkg/bank"
	"github.com/SBertone10/prog1-equipo-0X/pkg/config"
	"github.com/SBertone10/prog1-equipo-0X/pkg/handlers"
	"github.com/SBertone10/prog1-equipo-0X/pkg/services"
	"github.com/SBertone10/prog1-equipo-0X/pkg/store"
	"github.com/SBertone10/prog1-equipo-0X/pkg/websocket"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

func main() {
	log.Println("🚀 Iniciando servidor Respondidos")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Error leyendo .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Banco de preguntas
	questionBank := bank.New(cfg.BankDir, bank.DefaultCategories)
	questionBank.LoadCategories()

	// Resultados
	results := openResults(cfg.Results)
	defer results.Close()

	// Eventos y juego
	hub := websocket.NewHub()
	go hub.Run()

	game := services.NewGameService(questionBank, results, hub, services.GameOptions{
		Features: cfg.Features,
	})
	log.Printf("⚙️  Variante: temporizador=%v ayudas=%v", cfg.Features.Timer, cfg.Features.Hints)

	router := &handlers.Router{
		Categories: handlers.NewCategoryHandler(questionBank, results),
		Rounds:     handlers.NewRoundHandler(game),
		Results:    handlers.NewResultHandler(results),
		Share:      handlers.NewShareHandler(cfg.PublicURL),
		Events:     handlers.NewEventHandler(game, hub),
		StaticDir:  cfg.StaticDir,
	}

	server := &fasthttp.Server{
		Handler: router.Handler(),
		Name:    "Respondidos Server",
	}

	go func() {
		log.Printf("🎮 Servidor Respondidos iniciado en %s", cfg.PublicURL)
		log.Println("🔧 API Health: /api/health")
		log.Println("📊 API Categorías: /api/categories")
		log.Println("🔄 Presiona Ctrl+C para detener el servidor")
		if err := server.ListenAndServe(cfg.Addr()); err != nil {
			log.Fatalf("Error al iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Deteniendo servidor...")
	game.Shutdown()
	hub.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Printf("⚠️ Error deteniendo servidor: %v", err)
	}
	log.Println("👋 Servidor detenido")
}

// openResults abre el store configurado. Si falla, sigue en memoria para que
// el juego funcione igual.
func openResults(opts store.Options) store.ResultStore {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("🔌 Abriendo resultados (%s)...", opts.Backend)
	results, err := store.Open(ctx, opts)
	if err != nil {
		log.Printf("⚠️ %v", err)
		log.Println("💡 Los resultados se guardarán solo en memoria")
		return store.NewMemory()
	}
	return results
}
