package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Tree Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryTree,
		Message:  "Invalid node kind",
		Detail:   "A virtual node can only be constructed from a tag name or a component function.",
		DocURL:   "https://livetree.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryTree,
		Message:  "Root kind mismatch",
		Detail:   "Diff was called on two root nodes of different kinds or tags. Root replacement belongs to the driver.",
		DocURL:   "https://livetree.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryDriver,
		Message:  "Application not attached",
		Detail:   "The operation needs a render target. Call Attach with a container element first.",
		DocURL:   "https://livetree.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryTree,
		Message:  "Component rendered nothing",
		Detail:   "A component function returned a nil element. Components must always return an element node.",
		DocURL:   "https://livetree.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryDriver,
		Message:  "Update cycle panicked",
		Detail:   "update, view or a component function panicked. The model keeps any update already applied, and the next cycle renders the tree fresh.",
		DocURL:   "https://livetree.dev/docs/errors/E005",
	},

	// ============================================
	// Config Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No livetree.json or livetree.yaml was found.",
		DocURL:   "https://livetree.dev/docs/errors/E010",
	},
	"E011": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://livetree.dev/docs/errors/E011",
	},
	"E012": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://livetree.dev/docs/errors/E012",
	},

	// ============================================
	// Journal Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryJournal,
		Message:  "Journal unavailable",
		Detail:   "The message journal database could not be opened or written.",
		DocURL:   "https://livetree.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryJournal,
		Message:  "Journal record corrupt",
		Detail:   "A journal record could not be encoded or decoded.",
		DocURL:   "https://livetree.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryJournal,
		Message:  "Replay failed",
		Detail:   "Dispatching a recorded message failed during replay.",
		DocURL:   "https://livetree.dev/docs/errors/E022",
	},

	// ============================================
	// Snapshot Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategorySnapshot,
		Message:  "Snapshot write failed",
		Detail:   "The rendered snapshot could not be written to the output directory.",
		DocURL:   "https://livetree.dev/docs/errors/E030",
	},
	"E031": {
		Category: CategorySnapshot,
		Message:  "Snapshot upload failed",
		Detail:   "The rendered snapshot could not be uploaded to the object store.",
		DocURL:   "https://livetree.dev/docs/errors/E031",
	},

	// ============================================
	// Preview Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryPreview,
		Message:  "Invalid preview message",
		Detail:   "The preview client sent a message that could not be decoded or targets an unknown element.",
		DocURL:   "https://livetree.dev/docs/errors/E040",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
