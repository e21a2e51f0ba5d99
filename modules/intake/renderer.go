package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oddlzenie/intake/pkg/logger"
)

// DocumentRenderer turns a submission into a set of generated documents.
// Implementations may shell out, call a library, or talk to a remote
// service; callers must not assume any particular mechanism.
type DocumentRenderer interface {
	Render(ctx context.Context, sub FormSubmission) (*DocumentSet, error)
}

// RendererConfig configures the script-backed renderer.
type RendererConfig struct {
	PythonBin  string        `env:"PDF_PYTHON_BIN" envDefault:"python3"`           // Interpreter used to run the generator script.
	ScriptPath string        `env:"PDF_SCRIPT_PATH" envDefault:"./pdf_generator.py"` // Path to the generator script.
	WorkDir    string        `env:"PDF_WORK_DIR" envDefault:""`                    // Base directory for working areas; empty means the OS temp dir.
	Timeout    time.Duration `env:"PDF_RENDER_TIMEOUT" envDefault:"30s"`           // Wall-clock budget for one render invocation.
}

// ScriptRenderer invokes the external PDF generator as a subprocess.
//
// Contract with the script: it is called as
//
//	<python-bin> <script> <data.json path> <output dir>
//
// and must write the four documents named
// {Zivotopis,Majetok,Majetok_Historia,Veritelia}_<Meno>_<Priezvisko>.pdf
// (ASCII-folded name parts) into the output dir, exiting non-zero on
// failure.
type ScriptRenderer struct {
	cfg RendererConfig
	log *slog.Logger
}

// NewScriptRenderer creates a renderer, filling in defaults for zero
// config fields so hand-constructed configs behave like env-loaded ones.
func NewScriptRenderer(cfg RendererConfig, log *slog.Logger) *ScriptRenderer {
	if cfg.PythonBin == "" {
		cfg.PythonBin = "python3"
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = "./pdf_generator.py"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ScriptRenderer{cfg: cfg, log: log}
}

// Render implements DocumentRenderer. Every invocation gets a fresh
// server-generated working area; the request ID is never part of the path
// because proxies and clients can choose it, and a shared key would let
// two submissions overwrite each other's data. A missing individual
// output file is logged and omitted rather than failing the render. The
// returned set owns the working area and must be closed by the caller.
func (r *ScriptRenderer) Render(ctx context.Context, sub FormSubmission) (*DocumentSet, error) {
	if err := os.MkdirAll(r.cfg.WorkDir, 0o700); err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("create work base: %w", err))
	}
	dir := filepath.Join(r.cfg.WorkDir, "intake_"+uuid.New().String())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("create working area: %w", err))
	}

	ok := false
	defer func() {
		if !ok {
			_ = os.RemoveAll(dir)
		}
	}()

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("encode submission: %w", err))
	}
	dataFile := filepath.Join(dir, "data.json")
	if err := os.WriteFile(dataFile, data, 0o600); err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("write submission data: %w", err))
	}

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.cfg.PythonBin, r.cfg.ScriptPath, dataFile, dir)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Without this a killed script's orphaned children keep the output
	// pipes open and Run blocks long past the timeout.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return nil, errors.Join(ErrRenderFailed,
				fmt.Errorf("generator exceeded %s timeout: %w", r.cfg.Timeout, runCtx.Err()))
		}
		return nil, errors.Join(ErrRenderFailed,
			fmt.Errorf("generator failed: %w: %s", err, strings.TrimSpace(stderr.String())))
	}

	set := &DocumentSet{dir: dir}
	for _, name := range documentFilenames(sub) {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			r.log.WarnContext(ctx, "generated document missing",
				slog.String("filename", name), logger.Error(err))
			continue
		}
		set.Documents = append(set.Documents, Document{Filename: name, Content: content})
	}

	if len(set.Documents) == 0 {
		// The script exited zero but produced nothing under the expected
		// names; likely a naming mismatch with the generator.
		r.log.ErrorContext(ctx, "generator produced no documents",
			slog.String("expected", strings.Join(documentFilenames(sub), ", ")),
			slog.String("output", strings.TrimSpace(stdout.String())))
	} else {
		r.log.InfoContext(ctx, "documents generated",
			slog.Int("count", len(set.Documents)),
			slog.String("output", strings.TrimSpace(stdout.String())))
	}

	ok = true
	return set, nil
}
