package validation

// IDParams is the identifier shape used by path parameters.
type IDParams struct {
	ID string `uri:"id" validate:"required,id"`
}

// NewRecognition is the candidate record for recognition creation. GivenBy and
// GivenAt are filled by the server before validation.
type NewRecognition struct {
	CoreValueID uint   `json:"core_value_id" validate:"required"`
	Text        string `json:"text" validate:"required"`
	GivenFor    uint   `json:"given_for" validate:"required"`
	GivenBy     uint   `json:"given_by" validate:"required"`
	GivenAt     int64  `json:"given_at" validate:"required"`
}

// NewHi5 is the candidate record for a Hi5 grant.
type NewHi5 struct {
	RecognitionID uint    `json:"recognition_id" validate:"required"`
	GivenBy       uint    `json:"given_by" validate:"required"`
	GivenAt       int64   `json:"given_at" validate:"required"`
	Comment       *string `json:"comment"`
}

// RecognitionQuery is the filter/pagination shape of the list endpoint. All
// fields are optional raw query values.
type RecognitionQuery struct {
	CoreValueID string `form:"core_value_id" validate:"omitempty,uint"`
	GivenFor    string `form:"given_for" validate:"omitempty,uint"`
	GivenBy     string `form:"given_by" validate:"omitempty,uint"`
	Limit       string `form:"limit" validate:"omitempty,uint"`
	Offset      string `form:"offset" validate:"omitempty,uint"`
}
