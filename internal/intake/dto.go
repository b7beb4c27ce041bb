package intake

// fromURLRequest is the body of POST /documents/from-url.
type fromURLRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	DocType   string `json:"docType" binding:"required"`
	SourceURL string `json:"sourceUrl" binding:"required"`
}

// batchItemRequest is one explicit item in a batch body.
type batchItemRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	DocType   string `json:"docType" binding:"required"`
	SourceURL string `json:"sourceUrl" binding:"required"`
}

// batchQuery selects queued uploads instead of listing items explicitly.
type batchQuery struct {
	StudentID string `json:"studentId"`
	DocType   string `json:"docType"`
	Limit     int    `json:"limit"`
}

// batchRequest is the body of POST /documents/batch. Exactly one of Items
// or Query drives the batch.
type batchRequest struct {
	Items       []batchItemRequest `json:"items"`
	Query       *batchQuery        `json:"query"`
	CallbackURL string             `json:"callbackUrl"`
}
