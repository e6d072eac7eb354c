package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marek-kar/riskdash/pkg/analysis"
	"github.com/marek-kar/riskdash/pkg/cache"
	"github.com/marek-kar/riskdash/pkg/dataset"
	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

// ScoreRequest takes plain numbers so that fractional or out-of-range
// factors reach the scorer and are reported as invalid factors.
type ScoreRequest struct {
	Severity    *float64 `json:"severity" binding:"required"`
	Probability *float64 `json:"probability" binding:"required"`
	Exposure    *float64 `json:"exposure" binding:"required"`
}

type ScoreResponse struct {
	RiskScore int         `json:"riskScore"`
	RiskLevel model.Level `json:"riskLevel"`
	Color     string      `json:"color"`
}

type RankingQuery struct {
	Field       string `form:"field" binding:"omitempty,oneof=riskScore severity probability exposure"`
	Perspective string `form:"perspective" binding:"omitempty,oneof=before after"`
	Limit       int    `form:"limit" binding:"omitempty,min=0"`
}

type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx json"`
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	exportBaseName  = "risk_assessment"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sev, err := scoring.FactorFromFloat(scoring.FactorSeverity, *req.Severity)
	if err != nil {
		respondError(c, err)
		return
	}
	prob, err := scoring.FactorFromFloat(scoring.FactorProbability, *req.Probability)
	if err != nil {
		respondError(c, err)
		return
	}
	exp, err := scoring.FactorFromFloat(scoring.FactorExposure, *req.Exposure)
	if err != nil {
		respondError(c, err)
		return
	}

	score, err := scoring.CalculateRiskScore(sev, prob, exp)
	if err != nil {
		respondError(c, err)
		return
	}
	level, err := scoring.LevelForScore(score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ScoreResponse{RiskScore: score, RiskLevel: level, Color: scoring.GetRiskLevelColor(level)})
}

func (s *Server) handleRecompute(c *gin.Context) {
	records, ok := s.bindRecords(c)
	if !ok {
		return
	}

	out, err := scoring.RecomputeAll(records)
	if err != nil {
		s.metrics.RecordsScored(false, 1)
		respondError(c, err)
		return
	}
	s.metrics.RecordsScored(true, len(out))
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleReport(c *gin.Context) {
	records, ok := s.bindRecords(c)
	if !ok {
		return
	}
	log := s.log.With(logging.String("request_id", requestID(c)))

	key, err := cache.Key(records, s.engine.Options())
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if b, hit := s.cache.Get(ctx, key); hit {
		s.metrics.CacheLookup(true)
		log.Debug("report cache hit", logging.String("key", key))
		c.JSON(http.StatusOK, b)
		return
	}
	s.metrics.CacheLookup(false)

	start := time.Now()
	res := s.engine.BuildReport(records)
	if !res.OK() {
		s.metrics.ObserveReport(string(res.Err.Kind), time.Since(start))
		respondError(c, res.Err)
		return
	}
	s.metrics.ObserveReport("ok", time.Since(start))
	s.metrics.RecordsScored(true, len(records))

	s.cache.Set(ctx, key, res.Bundle)
	c.JSON(http.StatusOK, res.Bundle)
}

func (s *Server) handleRanking(c *gin.Context) {
	var q RankingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	records, ok := s.bindRecords(c)
	if !ok {
		return
	}

	field := model.FieldRiskScore
	if q.Field != "" {
		field = model.RankField(q.Field)
	}
	perspective, err := model.ParsePerspective(q.Perspective)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	limit := q.Limit
	if limit == 0 {
		limit = s.engine.Options().RankingLimit
	}

	if s.engine.Options().Recompute {
		if records, err = scoring.RecomputeAll(records); err != nil {
			respondError(c, err)
			return
		}
	}

	ranking, err := analysis.CreateRankingData(records, field, limit, perspective)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

func (s *Server) handleImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("file: %v", err))
		return
	}
	format, err := dataset.FormatFromPath(fh.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	opts := dataset.DefaultOptions()
	opts.Recompute = s.engine.Options().Recompute
	records, err := dataset.Read(f, format, opts)
	if err != nil {
		if status, _ := classify(err); status == http.StatusInternalServerError {
			// an unreadable upload is a client error
			abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	s.log.Info("records imported",
		logging.String("request_id", requestID(c)),
		logging.String("file", fh.Filename),
		logging.Int("records", len(records)),
	)
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleExport(c *gin.Context) {
	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	format := dataset.FormatXLSX
	if q.Format != "" {
		format = dataset.Format(q.Format)
	}

	records, ok := s.bindRecords(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := dataset.Write(&buf, format, records); err != nil {
		respondError(c, err)
		return
	}

	contentType := "application/json"
	switch format {
	case dataset.FormatXLSX:
		contentType = contentTypeXLSX
	case dataset.FormatCSV:
		contentType = contentTypeCSV
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportBaseName+"."+string(format)+`"`)
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// bindRecords reads a JSON array of records from the request body. It
// writes the error response itself and reports whether the caller should
// continue.
func (s *Server) bindRecords(c *gin.Context) ([]model.RiskRecord, bool) {
	data, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("read body: %v", err))
		return nil, false
	}
	records, err := analysis.DecodeRecords(data)
	if err != nil {
		respondError(c, &analysis.ReportComputationError{Kind: analysis.KindMalformedInput, Err: err})
		return nil, false
	}
	return records, true
}
