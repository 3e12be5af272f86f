package constants

// 盲盒状态常量
const (
	BackpackStatusUnopened = "unopened"
	BackpackStatusOpened   = "opened"
)

// 稀有度常量（与 blindbox.Tier 的字符串表示保持一致）
const (
	RarityCommon = "common"
	RarityRare   = "rare"
	RaritySecret = "secret"
)

// 队列与任务常量
const (
	QueueDefault          = "default"
	TaskBackpackOpened    = "backpack:opened"
	DrawRecordSourceQueue = "queue"
	DrawRecordSourceSync  = "sync"
)

// 设置键常量
const (
	SettingKeyBlindboxProbabilities = "blindbox_probabilities"
)

// 缓存键常量
const (
	CacheKeyPublicProducts = "public:products"
)

// 请求上下文常量
const (
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)
