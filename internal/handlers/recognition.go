package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"peerly/internal/middleware"
	"peerly/internal/models"
	"peerly/internal/services"
	"peerly/internal/utils"
	"peerly/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RecognitionStore recognition handler 依赖的持久化操作，由 services.RecognitionStore 实现
type RecognitionStore interface {
	CoreValueOrg(ctx context.Context, id uint) (uint, error)
	UserOrg(ctx context.Context, id uint) (uint, error)
	CreateRecognition(ctx context.Context, rec *models.Recognition) error
	GetRecognition(ctx context.Context, id, orgID uint) (*models.Recognition, error)
	ListRecognitions(ctx context.Context, orgID uint, f services.RecognitionFilter) ([]models.Recognition, error)
	GrantHi5(ctx context.Context, orgID uint, hi5 *models.RecognitionHi5) (services.GrantResult, error)
}

// GrantRecorder 统计 Hi5 发放结果
type GrantRecorder interface {
	RecordGrant(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordGrant(string) {}

type RecognitionHandler struct {
	store  RecognitionStore
	grants GrantRecorder
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewRecognitionHandler grants 可以为 nil
func NewRecognitionHandler(store RecognitionStore, grants GrantRecorder, log logrus.FieldLogger) *RecognitionHandler {
	if grants == nil {
		grants = nopRecorder{}
	}
	return &RecognitionHandler{
		store:  store,
		grants: grants,
		log:    log,
		now:    time.Now,
	}
}

type createRecognitionRequest struct {
	CoreValueID uint   `json:"core_value_id"`
	Text        string `json:"text"`
	GivenFor    uint   `json:"given_for"`
}

type giveHi5Request struct {
	Comment *string `json:"comment"`
}

// identity 取调用方身份，缺失时直接返回 401
func (h *RecognitionHandler) identity(c *gin.Context) (services.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	return identity, ok
}

// validate 校验失败时写出响应并返回 false
func (h *RecognitionHandler) validate(c *gin.Context, v any) bool {
	err := validation.Struct(v)
	if err == nil {
		return true
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		h.log.WithField("fields", verrs.Fields()).Info("validation error")
		respondValidation(c, verrs)
		return false
	}

	h.log.WithError(err).Error("validator failure")
	respondInternal(c)
	return false
}

// pathID 校验并解析 :id
func (h *RecognitionHandler) pathID(c *gin.Context) (uint, bool) {
	var params validation.IDParams
	if err := c.ShouldBindUri(&params); err != nil {
		respondValidation(c, validation.Errors{{Field: "id", Message: "id is a required field"}})
		return 0, false
	}
	if !h.validate(c, &params) {
		return 0, false
	}
	id, _ := validation.ParseUint(params.ID)
	return uint(id), true
}

// Create POST /recognitions
func (h *RecognitionHandler) Create(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var req createRecognitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Info("invalid recognition body")
		respondValidation(c, validation.FromBindError(err))
		return
	}

	candidate := validation.NewRecognition{
		CoreValueID: req.CoreValueID,
		Text:        utils.SanitizeText(req.Text),
		GivenFor:    req.GivenFor,
		GivenBy:     identity.UserID,
		GivenAt:     h.now().Unix(),
	}
	if !h.validate(c, &candidate) {
		return
	}

	ctx := c.Request.Context()
	log := h.log.WithFields(logrus.Fields{"user_id": identity.UserID, "org_id": identity.OrgID})

	coreValueOrg, err := h.store.CoreValueOrg(ctx, candidate.CoreValueID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "core value not found with specified id")
		return
	case err != nil:
		log.WithError(err).Error("Error while fetching core value")
		respondInternal(c)
		return
	case coreValueOrg != identity.OrgID:
		respondError(c, http.StatusNotFound, "core value not found with specified organisation")
		return
	}

	recipientOrg, err := h.store.UserOrg(ctx, candidate.GivenFor)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "User with specified id is not found")
		return
	case err != nil:
		log.WithError(err).Error("Error while fetching user")
		respondInternal(c)
		return
	case recipientOrg != identity.OrgID:
		respondError(c, http.StatusNotFound, "User not found in specified organisation")
		return
	}

	rec := &models.Recognition{
		CoreValueID: candidate.CoreValueID,
		Text:        candidate.Text,
		GivenFor:    candidate.GivenFor,
		GivenBy:     candidate.GivenBy,
		GivenAt:     candidate.GivenAt,
	}
	if err := h.store.CreateRecognition(ctx, rec); err != nil {
		log.WithError(err).Error("Error while creating recognition")
		respondInternal(c)
		return
	}

	log.WithField("recognition_id", rec.ID).Info("recognition created")
	respondData(c, http.StatusCreated, rec)
}

// FindOne GET /recognitions/:id
func (h *RecognitionHandler) FindOne(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	rec, err := h.store.GetRecognition(c.Request.Context(), id, identity.OrgID)
	if errors.Is(err, services.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Recognition with specified id is not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("recognition_id", id).Error("Error while fetching recognition")
		respondInternal(c)
		return
	}

	respondData(c, http.StatusOK, rec)
}

// FindAll GET /recognitions?core_value_id&given_for&given_by&limit&offset
func (h *RecognitionHandler) FindAll(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var query validation.RecognitionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.log.WithError(err).Info("invalid recognition query")
		respondValidation(c, validation.Errors{{Field: "query", Message: "query string is malformed"}})
		return
	}
	if !h.validate(c, &query) {
		return
	}

	filter := services.RecognitionFilter{
		CoreValueID: utils.StringToUint(query.CoreValueID),
		GivenFor:    utils.StringToUint(query.GivenFor),
		GivenBy:     utils.StringToUint(query.GivenBy),
	}
	filter.Limit, filter.Offset = utils.LimitAndOffset(
		int(utils.StringToUint(query.Limit)),
		int(utils.StringToUint(query.Offset)),
	)

	recognitions, err := h.store.ListRecognitions(c.Request.Context(), identity.OrgID, filter)
	if err != nil {
		h.log.WithError(err).WithField("org_id", identity.OrgID).Error("Error while listing recognitions")
		respondInternal(c)
		return
	}
	if len(recognitions) == 0 {
		respondError(c, http.StatusNotFound, "Recognition with specified organisation is not found")
		return
	}

	respondData(c, http.StatusOK, recognitions)
}

// GiveHi5 POST /recognitions/:id/hi5
func (h *RecognitionHandler) GiveHi5(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	recognitionID, ok := h.pathID(c)
	if !ok {
		return
	}

	// body 可以为空
	var req giveHi5Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.WithError(err).Info("invalid hi5 body")
		respondValidation(c, validation.FromBindError(err))
		return
	}
	if req.Comment != nil {
		comment := utils.SanitizeText(*req.Comment)
		req.Comment = &comment
	}

	candidate := validation.NewHi5{
		RecognitionID: recognitionID,
		GivenBy:       identity.UserID,
		GivenAt:       h.now().Unix(),
		Comment:       req.Comment,
	}
	if !h.validate(c, &candidate) {
		return
	}

	hi5 := &models.RecognitionHi5{
		RecognitionID: candidate.RecognitionID,
		GivenBy:       candidate.GivenBy,
		GivenAt:       candidate.GivenAt,
		Comment:       candidate.Comment,
	}

	log := h.log.WithFields(logrus.Fields{
		"user_id":        identity.UserID,
		"org_id":         identity.OrgID,
		"recognition_id": recognitionID,
	})

	result, err := h.store.GrantHi5(c.Request.Context(), identity.OrgID, hi5)
	if err != nil {
		log.WithError(err).Error("Error while granting hi5")
		respondInternal(c)
		return
	}
	h.grants.RecordGrant(result.Outcome.String())

	switch result.Outcome {
	case services.GrantOK:
		log.WithField("balance", result.Balance).Info("hi5 granted")
		respondData(c, http.StatusCreated, hi5)
	case services.GrantRecognitionNotFound:
		respondError(c, http.StatusNotFound, "Recognition with specified id is not found")
	case services.GrantUserNotFound:
		respondError(c, http.StatusNotFound, "User with specified id is not found")
	case services.GrantWrongOrganisation:
		respondError(c, http.StatusNotFound, "User with specified organisation is not found")
	case services.GrantQuotaExhausted:
		log.Info("hi5 quota exhausted")
		respondError(c, http.StatusNotFound, "User hi5 balance is Empty")
	default:
		log.WithField("outcome", result.Outcome.String()).Error("unexpected hi5 outcome")
		respondInternal(c)
	}
}
