package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传相关常量
const (
	MimeVideo = "video/"
	MimeImage = "image/"
)

const (
	// DefaultPageLimit 列表接口默认分页大小
	DefaultPageLimit = 10
	// MaxPageLimit 列表接口最大分页大小
	MaxPageLimit = 100
)
