package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/willtroppe/callrep/internal/workflow"
	"github.com/willtroppe/callrep/pkg/civic"
	"github.com/willtroppe/callrep/pkg/config"
	"github.com/willtroppe/callrep/pkg/scriptgen"
)

type Handlers struct {
	db        *gorm.DB
	sessions  *SessionRegistry
	recorder  *workflow.Recorder
	generator *scriptgen.Generator
	civic     *civic.Client
}

func NewHandlers(db *gorm.DB) *Handlers {
	cfg := config.GlobalConfig
	return &Handlers{
		db:        db,
		sessions:  NewSessionRegistry(cfg.WorkflowTTL),
		recorder:  workflow.NewRecorder(&dbLogStore{db: db}),
		generator: scriptgen.New(scriptgen.WithLLM(cfg.LLMApiKey, cfg.LLMBaseURL, cfg.LLMModel)),
		civic:     civic.NewClient(cfg.CivicAPIURL, cfg.CivicAPIKey, cfg.CivicCacheTTL),
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	h.registerSystemRoutes(r)
	h.registerRepresentativeRoutes(r)
	h.registerScriptRoutes(r)
	h.registerCallLogRoutes(r)
	h.registerWorkflowRoutes(r)
}

// registerSystemRoutes System Module
func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("system")
	{
		system.GET("/health", h.HealthCheck)
		system.GET("/status", h.SystemStatus)
	}
}

// registerRepresentativeRoutes Representative directory
func (h *Handlers) registerRepresentativeRoutes(r *gin.RouterGroup) {
	reps := r.Group("representatives")
	{
		reps.GET("/:zip_code", h.ListRepresentatives)
		reps.POST("", h.CreateRepresentative)
		reps.DELETE("/:rep_id", h.DeleteRepresentative)
		reps.POST("/:rep_id/phones", h.AddPhone)
		reps.DELETE("/:rep_id/phones/:phone_id", h.DeletePhone)
	}
}

// registerScriptRoutes Call script library
func (h *Handlers) registerScriptRoutes(r *gin.RouterGroup) {
	scripts := r.Group("scripts")
	{
		scripts.GET("", h.ListScripts)
		scripts.POST("", h.CreateScript)
		scripts.GET("/:script_id", h.GetScript)
		scripts.PUT("/:script_id", h.UpdateScript)
		scripts.DELETE("/:script_id", h.DeleteScript)
	}
	r.POST("generate-script", h.GenerateScript)
}

// registerCallLogRoutes Call history and analytics
func (h *Handlers) registerCallLogRoutes(r *gin.RouterGroup) {
	logs := r.Group("call-logs")
	{
		logs.POST("", h.CreateCallLog)
		logs.GET("", h.ListCallLogs)
		logs.GET("/stats", h.CallLogStats)
	}
}

// registerWorkflowRoutes Guided calling session
func (h *Handlers) registerWorkflowRoutes(r *gin.RouterGroup) {
	wf := r.Group("workflow")
	{
		wf.GET("/status", h.WorkflowStatus)
		wf.POST("/selection/toggle", h.ToggleSelection)
		wf.POST("/selection/select-all", h.SelectAll)
		wf.POST("/selection/clear", h.ClearSelection)
		wf.PUT("/script", h.SetWorkflowScript)
		wf.PUT("/zip", h.SetWorkflowZip)
		wf.POST("/start", h.StartWorkflow)
		wf.POST("/call/start", h.StartCall)
		wf.POST("/call/complete", h.CompleteCall)
		wf.POST("/call/complete-direct", h.CompleteCallDirect)
		wf.POST("/advance", h.AdvanceWorkflow)
	}
}
