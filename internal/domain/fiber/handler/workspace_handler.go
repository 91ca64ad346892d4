package handler

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/middleware"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/usecase"
	"github.com/fadilmartias/datapulse/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const maxUploadSize = 5 * 1024 * 1024

type WorkspaceHandler struct {
	uc         *usecase.SkillAnalysisUsecase
	workspaces *usecase.WorkspaceRegistry
}

func NewWorkspaceHandler(uc *usecase.SkillAnalysisUsecase, workspaces *usecase.WorkspaceRegistry) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc, workspaces: workspaces}
}

func (h *WorkspaceHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/workspace", h.Workspace)
	api.Post("/workspace/refresh", h.Refresh)

	api.Get("/jds", h.ListJDs)
	api.Post("/jds", h.UploadJD)
	api.Put("/jds/selection", h.SelectJD)

	api.Put("/cvs/level", h.SetLevel)
	api.Post("/cvs", h.UploadCVs)
	api.Put("/cvs/selection", h.SelectCV)

	api.Post("/analysis", middleware.RateLimiter(1, 4*time.Second), h.StartAnalysis)
	api.Get("/analysis/:id", h.LoadAnalysis)

	api.Get("/chats", h.ListChats)
	api.Put("/chats/selection", h.SelectChat)
	api.Post("/chats/messages", h.SendMessage)
	api.Delete("/chats/:id", h.DeleteChat)
}

// workspace returns the session's workspace, loading it on first use.
func (h *WorkspaceHandler) workspace(c *fiber.Ctx) *usecase.Workspace {
	ws, created := h.workspaces.Get(middleware.SessionID(c))
	if created {
		h.uc.Load(c.UserContext(), ws)
	}
	return ws
}

func snapshot(c *fiber.Ctx, ws *usecase.Workspace, message string, meta any) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Meta:    meta,
		Data:    ws.Snapshot(),
	})
}

func (h *WorkspaceHandler) Workspace(c *fiber.Ctx) error {
	return snapshot(c, h.workspace(c), "Success get workspace", nil)
}

func (h *WorkspaceHandler) Refresh(c *fiber.Ctx) error {
	ws, _ := h.workspaces.Get(middleware.SessionID(c))
	h.uc.Load(c.UserContext(), ws)
	return snapshot(c, ws, "Success refresh workspace", nil)
}

func (h *WorkspaceHandler) ListJDs(c *fiber.Ctx) error {
	ws := h.workspace(c)
	page, size := util.ParsePage(c.Query("page"), c.Query("page_size"))
	items, pagination := util.Paginate(ws.State().JD.List, page, size)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get job descriptions",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *WorkspaceHandler) UploadJD(c *fiber.Ctx) error {
	ws := h.workspace(c)
	header, err := c.FormFile("file")
	if err != nil {
		return util.BadRequest(c, "file is required", err)
	}
	upload, closeFn, err := openUpload(header)
	if err != nil {
		return util.BadRequest(c, err.Error(), err)
	}
	defer closeFn()

	h.uc.UploadJobDescription(c.UserContext(), ws, upload, utils.CopyString(c.FormValue("title")))
	return snapshot(c, ws, "JD upload processed", nil)
}

func (h *WorkspaceHandler) SelectJD(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	ws := h.workspace(c)
	h.uc.SelectJobDescription(c.UserContext(), ws, req.ID)
	return snapshot(c, ws, "JD selection updated", nil)
}

func (h *WorkspaceHandler) SetLevel(c *fiber.Ctx) error {
	var req dto.LevelRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	level, err := model.ParseLevel(req.Level)
	if err != nil {
		return util.BadRequest(c, err.Error(), err)
	}
	ws := h.workspace(c)
	h.uc.SetResumeLevel(ws, level)
	return snapshot(c, ws, "CV level updated", nil)
}

func (h *WorkspaceHandler) UploadCVs(c *fiber.Ctx) error {
	ws := h.workspace(c)
	form, err := c.MultipartForm()
	if err != nil {
		return util.BadRequest(c, "multipart form is required", err)
	}
	headers := append(form.File["files"], form.File["file"]...)
	if len(headers) == 0 {
		return util.BadRequest(c, "at least one file is required", nil)
	}
	if lvl := form.Value["level"]; len(lvl) > 0 && lvl[0] != "" {
		level, err := model.ParseLevel(lvl[0])
		if err != nil {
			return util.BadRequest(c, err.Error(), err)
		}
		h.uc.SetResumeLevel(ws, level)
	}

	uploads := make([]dto.FileUpload, 0, len(headers))
	for _, fh := range headers {
		upload, closeFn, err := openUpload(fh)
		if err != nil {
			return util.BadRequest(c, err.Error(), err)
		}
		defer closeFn()
		uploads = append(uploads, *upload)
	}

	outcomes := h.uc.UploadResumes(c.UserContext(), ws, uploads)
	views := make([]dto.UploadOutcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		v := dto.UploadOutcomeView{FileName: o.FileName, Resume: o.Resume}
		if o.Err != nil {
			v.Error = o.Err.Error()
		}
		views = append(views, v)
	}
	return snapshot(c, ws, "CV upload processed", fiber.Map{"outcomes": views})
}

func (h *WorkspaceHandler) SelectCV(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	ws := h.workspace(c)
	if err := h.uc.SelectResume(ws, req.ID); err != nil {
		return util.BadRequest(c, err.Error(), err)
	}
	return snapshot(c, ws, "CV selection updated", nil)
}

func (h *WorkspaceHandler) StartAnalysis(c *fiber.Ctx) error {
	ws := h.workspace(c)
	if !h.uc.StartAnalysis(c.UserContext(), ws) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: analysisRejection(ws.State()),
			Details: ws.Snapshot(),
		})
	}
	return snapshot(c, ws, "Analysis finished", nil)
}

func analysisRejection(s usecase.State) string {
	if s.Analysis.Running {
		return "an analysis is already running"
	}
	return "select a job description and upload at least one CV first"
}

func (h *WorkspaceHandler) LoadAnalysis(c *fiber.Ctx) error {
	ws := h.workspace(c)
	if !h.uc.LoadAnalysis(c.UserContext(), ws, c.Params("id")) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "an analysis is already running",
		})
	}
	return snapshot(c, ws, "Success get analysis", nil)
}

func (h *WorkspaceHandler) ListChats(c *fiber.Ctx) error {
	ws := h.workspace(c)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get conversations",
		Data:    ws.State().VisibleConversations(),
	})
}

func (h *WorkspaceHandler) SelectChat(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	ws := h.workspace(c)
	h.uc.SelectConversation(c.UserContext(), ws, req.ID)
	return snapshot(c, ws, "Conversation selected", nil)
}

func (h *WorkspaceHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	ws := h.workspace(c)
	if !h.uc.SendMessage(c.UserContext(), ws, req.Message) {
		return util.BadRequest(c, "select a job description and a CV, then type a message", nil)
	}
	return snapshot(c, ws, "Message sent", nil)
}

func (h *WorkspaceHandler) DeleteChat(c *fiber.Ctx) error {
	ws := h.workspace(c)
	h.uc.DeleteConversation(c.UserContext(), ws, c.Params("id"))
	return snapshot(c, ws, "Conversation delete processed", nil)
}

func openUpload(fh *multipart.FileHeader) (*dto.FileUpload, func(), error) {
	if fh.Size > maxUploadSize {
		return nil, nil, fmt.Errorf("%s is too large (max 5MB)", fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %s", fh.Filename)
	}
	return &dto.FileUpload{Name: fh.Filename, Reader: f}, func() { f.Close() }, nil
}
