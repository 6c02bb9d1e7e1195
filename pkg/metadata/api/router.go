package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cloudmesh-io/skymeta/internal/logger"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/api/handlers"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// NewRouter builds the chi router serving every §6 endpoint of the metadata
// control plane, plus unauthenticated health probes.
//
// Routes:
//   - GET /health, /health/ready
//   - POST /start_upload, PATCH /complete_upload, PATCH /set_multipart_id,
//     PATCH /append_part, POST /continue_upload
//   - POST /start_delete_objects, PATCH /complete_delete_objects
//   - POST /locate_object, POST /head_object, POST /start_warmup
//   - POST /list_objects, POST /list_objects_versioning
//   - POST /list_multipart_uploads, POST /list_parts
//   - POST /locate_object_status
//   - POST /record_metrics, POST /list_metrics
func NewRouter(s *store.GORMStore) http.Handler {
	svc := service.New(s)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	health := handlers.NewHealthHandler(s)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", health.Liveness)
		r.Get("/ready", health.Readiness)
	})

	upload := handlers.NewUploadHandler(svc)
	r.Post("/start_upload", upload.StartUpload)
	r.Patch("/complete_upload", upload.CompleteUpload)
	r.Patch("/set_multipart_id", upload.SetMultipartID)
	r.Patch("/append_part", upload.AppendPart)
	r.Post("/continue_upload", upload.ContinueUpload)

	del := handlers.NewDeleteHandler(svc)
	r.Post("/start_delete_objects", del.StartDeleteObjects)
	r.Patch("/complete_delete_objects", del.CompleteDeleteObjects)

	locate := handlers.NewLocateHandler(svc)
	r.Post("/locate_object", locate.LocateObject)
	r.Post("/head_object", locate.HeadObject)
	r.Post("/start_warmup", locate.StartWarmup)
	r.Post("/list_objects", locate.ListObjects)
	r.Post("/list_objects_versioning", locate.ListObjectsVersioning)
	r.Post("/list_multipart_uploads", locate.ListMultipartUploads)
	r.Post("/list_parts", locate.ListParts)
	r.Post("/locate_object_status", locate.LocateObjectStatus)

	metrics := handlers.NewMetricsHandler(svc)
	r.Post("/record_metrics", metrics.RecordMetrics)
	r.Post("/list_metrics", metrics.ListMetrics)

	return r
}

// requestLogger logs each request's method, path, status, and duration using
// the structured logger, at DEBUG level for health probes to reduce noise.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		}
		if r.URL.Path == "/health" || r.URL.Path == "/health/ready" {
			logger.Debug("request completed", fields...)
		} else {
			logger.Info("request completed", fields...)
		}
	})
}
