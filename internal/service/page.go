package service

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// NormalizePage page 从 1 开始；size 默认 20，封顶 50
func NormalizePage(page, size int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}
