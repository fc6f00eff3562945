package uploads

import (
	"time"

	"halo-backend/internal/analysis"
)

// MenuUpload is one persisted analysis result, always scoped to the
// owning user. Only the success variant of an analysis outcome is ever
// stored in AnalysisResult.
type MenuUpload struct {
	ID             int                 `json:"id"`
	UserID         int                 `json:"user_id"`
	UploadName     string              `json:"upload_name"`
	CreatedAt      time.Time           `json:"created_at"`
	AnalysisResult []analysis.MenuItem `json:"analysis_result"`
	ImageKey       *string             `json:"-"`
}
