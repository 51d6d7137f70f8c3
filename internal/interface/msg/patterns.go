package msg

// Logical operation names of the message surface.
const (
	PatternHealth         = "users.health"
	PatternCreate         = "users.create"
	PatternFindAll        = "users.findAll"
	PatternFindByID       = "users.find.id"
	PatternFindByUsername = "users.find.username"
	PatternFindByEmail    = "users.find.email"
	PatternFindMeta       = "users.find.meta"
	PatternFindSummary    = "users.find.summary"
	PatternUpdate         = "users.update"
	PatternRemove         = "users.remove"
	PatternRestore        = "users.restore"
)
