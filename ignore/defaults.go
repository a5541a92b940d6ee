package ignore

// ExcludedDirNames are directory names that are always skipped during
// workspace traversal, regardless of gitignore rules.
var ExcludedDirNames = []string{
	// Version control
	".git",
	".svn",
	".hg",

	// Dependencies
	"node_modules",
	"vendor",
	"bower_components",

	// Build output
	"dist",
	"build",
	"out",
	"target",
	"bin",
	"obj",

	// IDE / Editor
	".idea",
	".vscode",
	".vs",

	// Python environments
	"__pycache__",
	".venv",
	"venv",
	".env",

	// Cache / coverage
	".cache",
	".parcel-cache",
	".next",
	".nuxt",
	"coverage",
	".nyc_output",
	"htmlcov",
}

// ExcludedExtensions are extensions (with dot, lower-case) for binary and
// media files that are never worth indexing.
var ExcludedExtensions = []string{
	// Compiled / binary
	".exe", ".dll", ".so", ".dylib", ".o", ".a", ".lib",
	".class", ".jar", ".war",
	".pyc", ".pyo",

	// Archives
	".zip", ".tar", ".gz", ".tgz", ".rar", ".7z",

	// Images
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".tiff",

	// Fonts
	".woff", ".woff2", ".ttf", ".eot", ".otf",

	// Media
	".mp3", ".mp4", ".avi", ".mov", ".wav", ".flac",

	// Documents
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",

	// Databases
	".sqlite", ".sqlite3", ".db",

	// Logs; also keeps the server's own log file from feeding the watcher
	".log",
}

// ExcludedFileNames are exact file names (lower-case) that are skipped:
// lock files, OS droppings, minified bundles.
var ExcludedFileNames = []string{
	".ds_store",
	"thumbs.db",
	"desktop.ini",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"gemfile.lock",
	"poetry.lock",
	"cargo.lock",
	"go.sum",
	"composer.lock",
}

// DefaultMaxFileSizeBytes is the indexing size ceiling: files larger than
// this are skipped entirely.
const DefaultMaxFileSizeBytes = 1024 * 1024
