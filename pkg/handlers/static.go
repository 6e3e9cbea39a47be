package handlers

import (
	"html"
	"log"
	"os"
	"path/filepath"

	"github.com/valyala/fasthttp"
)

const pageStyle = `
	<style>
		body {
			font-family: Arial, sans-serif;
			background: linear-gradient(135deg, #0f0f0f 0%, #1a1a2e 50%, #16213e 100%);
			color: white;
			text-align: center;
			padding: 50px;
			margin: 0;
			min-height: 100vh;
			display: flex;
			flex-direction: column;
			justify-content: center;
			align-items: center;
		}
		h1 { font-size: 2.5rem; margin-bottom: 20px; color: #ffd700; }
		p { font-size: 1.1rem; color: #ccc; }
		.endpoint {
			background: rgba(0, 0, 0, 0.3);
			padding: 5px 10px;
			border-radius: 5px;
			margin: 5px 0;
			font-family: monospace;
		}
	</style>`

// serveFile sirve un archivo del directorio estático
func serveFile(ctx *fasthttp.RequestCtx, dir, filename string) {
	filePath := filepath.Join(dir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString(`<!DOCTYPE html>
<html>
<head><title>Archivo no encontrado</title>` + pageStyle + `</head>
<body>
	<h1>⚠️ Archivo no encontrado</h1>
	<p>El archivo <strong>` + html.EscapeString(filename) + `</strong> no existe en el servidor.</p>
	<p>La API del juego sigue disponible en <span class="endpoint">/api</span>.</p>
</body>
</html>`)
		return
	}

	if filepath.Ext(filename) == ".html" {
		ctx.SetContentType("text/html; charset=utf-8")
	}
	fasthttp.ServeFile(ctx, filePath)
}

func serve404(ctx *fasthttp.RequestCtx) {
	log.Printf("🔍 Ruta no encontrada: %s %s", ctx.Method(), ctx.Path())
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBodyString(`<!DOCTYPE html>
<html>
<head><title>404 - Página no encontrada</title>` + pageStyle + `</head>
<body>
	<h1>🎮 404 - Página no encontrada</h1>
	<p>La página que buscas no existe en este servidor.</p>
	<h3>🔧 Endpoints API disponibles:</h3>
	<div class="endpoint">GET /api/health</div>
	<div class="endpoint">GET /api/categories</div>
	<div class="endpoint">POST /api/categories/reload</div>
	<div class="endpoint">POST /api/categories/{nombre}/questions</div>
	<div class="endpoint">POST /api/categories/{nombre}/import</div>
	<div class="endpoint">POST /api/rounds</div>
	<div class="endpoint">GET /api/rounds/current</div>
	<div class="endpoint">POST /api/rounds/{id}/answer</div>
	<div class="endpoint">POST /api/rounds/{id}/hint</div>
	<div class="endpoint">POST /api/rounds/{id}/advance</div>
	<div class="endpoint">POST /api/rounds/{id}/abandon</div>
	<div class="endpoint">GET /api/rounds/{id}/results</div>
	<div class="endpoint">GET /api/results?category=&amp;limit=</div>
	<div class="endpoint">GET /api/results/best</div>
	<div class="endpoint">GET /api/share.png</div>
	<div class="endpoint">GET /ws</div>
</body>
</html>`)
}
