package handlers

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/utils"
)

func writeJSON(ctx *fasthttp.RequestCtx, status int, body any, startTime time.Time) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		utils.LogError("Handlers", "Ошибка кодирования ответа", err)
	}
	utils.LogResponse(string(ctx.Path()), status, time.Since(startTime))
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string, startTime time.Time) {
	writeJSON(ctx, status, map[string]string{"error": message}, startTime)
}
