package api

// Type aliases to expose common types in the api package
import api_types "github.com/jack-barr3tt/gbr-priority/src/common/api-types"

type (
	ErrorResponse     = api_types.ErrorResponse
	HealthResponse    = api_types.HealthResponse
	Row               = api_types.Row
	UploadResponse    = api_types.UploadResponse
	ImportRequest     = api_types.ImportRequest
	RankingResponse   = api_types.RankingResponse
	SummaryResponse   = api_types.SummaryResponse
	HistogramBin      = api_types.HistogramBin
	HistogramResponse = api_types.HistogramResponse
	TypesResponse     = api_types.TypesResponse
)
