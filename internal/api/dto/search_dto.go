package dto

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	Q         string `form:"q" binding:"omitempty,max=100"`
	LocalOnly bool   `form:"local_only"`
	Category  int    `form:"category" binding:"omitempty,min=0"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1"`
}

// SearchVideoHit 搜索结果：视频摘要 + 高亮片段
type SearchVideoHit struct {
	VideoSummary
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SearchVideoData 搜索结果，Source 标明结果来自 elasticsearch 还是 database
type SearchVideoData struct {
	Videos     []SearchVideoHit `json:"videos"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int64            `json:"total_pages"`
	Source     string           `json:"source"`
}
