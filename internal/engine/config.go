package engine

// Config captures runtime settings for faster-whisper operations.
type Config struct {
	// Python is the interpreter executable that hosts the engine helper. It
	// must be able to import the faster_whisper package.
	Python string
	// ModelCacheDir is where model weights are downloaded and cached. The
	// directory is lock-protected while a decode runs so concurrent
	// invocations cannot corrupt a download in progress.
	ModelCacheDir string
}

// Decode policy constants. Every invocation runs with these settings; only
// the model selection varies.
const (
	BeamSize       = "5"
	Temperature    = "0.0"
	CPUDevice      = "cpu"
	CPUComputeType = "int8"
)

// PolicyRevision participates in result cache keys. Bump it whenever the
// decode policy above changes so stale cached transcriptions are not reused.
const PolicyRevision = 1

// Command names for external tools.
const (
	DefaultPythonCommand = "python3"
)
