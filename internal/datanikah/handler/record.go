package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/biz"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/internal/pkg/httputils"
	"github.com/kart-io/datanikah/internal/pkg/spreadsheet"
	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/json"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

const (
	formFileField    = "file"
	templateFilename = "template-data-nikah.xlsx"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RecordHandler serves record search, upload and the recent uploads feed.
type RecordHandler struct {
	records *biz.RecordService
	imports *biz.ImportService
	recent  *biz.RecentFeed
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records *biz.RecordService, imports *biz.ImportService, recent *biz.RecentFeed) *RecordHandler {
	return &RecordHandler{records: records, imports: imports, recent: recent}
}

// Search handles GET /v1/records/search and its admin twin.
func (h *RecordHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := bindQuery(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	results, err := h.records.Search(c.Request.Context(), &req)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, response.List(results, len(results)))
}

// Import handles POST /v1/admin/records/import (multipart field "file").
func (h *RecordHandler) Import(c *gin.Context) {
	header, err := c.FormFile(formFileField)
	if err != nil {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessages(
			"Multipart field \"file\" is required",
			"Field \"file\" wajib diisi",
		), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		httputils.WriteResponse(c, errors.ErrImportUnreadable.WithCause(err), nil)
		return
	}
	defer file.Close()

	logger.Infow("spreadsheet upload received",
		"filename", header.Filename,
		"size", header.Size,
		"uploader", auth.SubjectFromContext(c.Request.Context()),
	)

	result, err := h.imports.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, result)
}

// Template handles GET /v1/admin/records/template.
func (h *RecordHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+templateFilename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := spreadsheet.WriteTemplate(c.Writer, "Data Nikah", biz.Headers()); err != nil {
		logger.Errorw("failed to write template", "error", err.Error())
		_ = c.Error(err)
	}
}

// Recent handles GET /v1/admin/records/recent?limit=N.
func (h *RecordHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.recent.Poll(c.Request.Context(), limit)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, response.List(records, len(records)))
}

// RecentStream handles GET /v1/admin/records/recent/stream as server-sent
// events. Each "records" event carries the full list; query failures are
// sent as "error" events and the stream stays open.
func (h *RecordHandler) RecentStream(c *gin.Context) {
	// 流式响应不受全局写超时限制
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	updates := h.recent.Subscribe(c.Request.Context())
	c.Stream(func(w io.Writer) bool {
		snap, ok := <-updates
		if !ok {
			return false
		}

		if snap.Err != nil {
			c.SSEvent("error", errors.FromError(snap.Err).Message("en"))
			return true
		}

		records := snap.Records
		if records == nil {
			records = []*model.MarriageRecord{}
		}
		payload, err := json.Marshal(records)
		if err != nil {
			logger.Errorw("failed to encode recent records", "error", err.Error())
			return false
		}
		c.SSEvent("records", string(payload))
		return true
	})
}
