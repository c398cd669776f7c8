package web

import (
	"log"
	"net/http"

	"ytchapters/internal/config"
	"ytchapters/internal/services"
	"ytchapters/internal/web/handlers"
	"ytchapters/internal/web/middleware"
)

// SetupRouter 組裝 HTTP 路由。所有 /api 路由都在 JWT 驗證之後。
func SetupRouter(appConfig *config.Config, extractSvc *services.ExtractService, analyzeSvc *services.AnalyzeService) (http.Handler, error) {
	if extractSvc == nil {
		log.Panicln("SetupRouter：ExtractService 不得為空")
	}
	if analyzeSvc == nil {
		log.Panicln("SetupRouter：AnalyzeService 不得為空")
	}

	auth, err := middleware.NewAuth(appConfig.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/subtitles/extract", auth.RequireAuth(handlers.NewExtractHandler(extractSvc)))
	mux.Handle("GET /api/subtitles/videos", auth.RequireAuth(handlers.NewVideosHandler(extractSvc)))

	mux.Handle("POST /api/ai/analyze/{subtitleId}", auth.RequireAuth(handlers.NewAnalyzeHandler(analyzeSvc, false)))
	mux.Handle("POST /api/ai/regenerate/{subtitleId}", auth.RequireAuth(handlers.NewAnalyzeHandler(analyzeSvc, true)))
	mux.Handle("GET /api/ai/analyses", auth.RequireAuth(handlers.NewListAnalysesHandler(analyzeSvc)))
	mux.Handle("GET /api/ai/analyses/{analysisId}", auth.RequireAuth(handlers.NewGetAnalysisHandler(analyzeSvc)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Println("資訊：HTTP 路由設定完成。")
	return mux, nil
}
