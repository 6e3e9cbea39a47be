package handlers

import (
	"log"
	"strings"

	"github.com/valyala/fasthttp"
)

// Router reúne los handlers y resuelve cada ruta
type Router struct {
	Categories *CategoryHandler
	Rounds     *RoundHandler
	Results    *ResultHandler
	Share      *ShareHandler
	Events     *EventHandler
	StaticDir  string
}

// Handler devuelve el fasthttp.RequestHandler del servidor
func (rt *Router) Handler() fasthttp.RequestHandler {
	return rt.handle
}

func (rt *Router) handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	log.Printf("📡 %s %s", method, path)

	ctx.Response.Header.Set("Server", "Respondidos-FastHTTP/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// Headers CORS para desarrollo
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if method == fasthttp.MethodOptions {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	case path == "/":
		serveFile(ctx, rt.StaticDir, "index.html")
	case path == "/favicon.ico":
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("🎮")

	case path == "/api/health":
		rt.Categories.HealthCheck(ctx)

	// Categorías y banco de preguntas
	case path == "/api/categories" && method == fasthttp.MethodGet:
		rt.Categories.GetCategories(ctx)
	case path == "/api/categories/reload" && method == fasthttp.MethodPost:
		rt.Categories.ReloadCategories(ctx)
	case strings.HasPrefix(path, "/api/categories/") && method == fasthttp.MethodPost:
		rt.handleCategoryPostRoutes(ctx, path)

	// Ronda
	case path == "/api/rounds" && method == fasthttp.MethodPost:
		rt.Rounds.StartRound(ctx)
	case path == "/api/rounds/current" && method == fasthttp.MethodGet:
		rt.Rounds.GetCurrentRound(ctx)
	case strings.HasPrefix(path, "/api/rounds/"):
		rt.handleRoundRoutes(ctx, path, method)

	// Resultados
	case path == "/api/results" && method == fasthttp.MethodGet:
		rt.Results.GetHistory(ctx)
	case path == "/api/results/best" && method == fasthttp.MethodGet:
		rt.Results.GetBest(ctx)

	case path == "/api/share.png" && method == fasthttp.MethodGet:
		rt.Share.GetShareQR(ctx)

	case path == "/ws":
		rt.Events.HandleWebSocket(ctx)

	default:
		serve404(ctx)
	}
}

func (rt *Router) handleCategoryPostRoutes(ctx *fasthttp.RequestCtx, path string) {
	parts := strings.Split(path, "/")

	// /api/categories/{name}/questions y /api/categories/{name}/import
	if len(parts) == 5 && parts[1] == "api" && parts[2] == "categories" && parts[3] != "" {
		ctx.SetUserValue("name", parts[3])
		switch parts[4] {
		case "questions":
			rt.Categories.AddQuestion(ctx)
			return
		case "import":
			rt.Categories.ImportQuestions(ctx)
			return
		}
	}

	serve404(ctx)
}

func (rt *Router) handleRoundRoutes(ctx *fasthttp.RequestCtx, path, method string) {
	parts := strings.Split(path, "/")

	// /api/rounds/{id}/{action}
	if len(parts) != 5 || parts[1] != "api" || parts[2] != "rounds" || parts[3] == "" {
		serve404(ctx)
		return
	}
	ctx.SetUserValue("id", parts[3])

	switch {
	case parts[4] == "answer" && method == fasthttp.MethodPost:
		rt.Rounds.SubmitAnswer(ctx)
	case parts[4] == "hint" && method == fasthttp.MethodPost:
		rt.Rounds.UseHint(ctx)
	case parts[4] == "advance" && method == fasthttp.MethodPost:
		rt.Rounds.Advance(ctx)
	case parts[4] == "abandon" && method == fasthttp.MethodPost:
		rt.Rounds.Abandon(ctx)
	case parts[4] == "results" && method == fasthttp.MethodGet:
		rt.Rounds.GetResults(ctx)
	default:
		serve404(ctx)
	}
}
