// Package cli implements the postmd command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roboco-io/postmd/internal/config"
	"github.com/roboco-io/postmd/internal/parser"
	"github.com/roboco-io/postmd/internal/render"
)

var (
	version = "dev"

	// Global flags
	configFile string
	verbose    bool
	quiet      bool

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "postmd [file]",
	Short: "경량 마크다운 포스트 변환기",
	Long: `postmd는 경량 마크다운 문법으로 작성된 포스트를 HTML, 텍스트,
터미널 출력 등으로 변환합니다.

지원 문법:
  # / ## / ###      제목
  1. 항목            번호 목록 (작성한 번호 그대로 유지)
  - 항목             글머리 목록
  ` + "`code`" + `, **bold**    인라인 서식

파일을 인자로 주면 convert 명령과 동일하게 동작합니다.

예시:
  postmd post.md
  postmd convert post.md -f terminal
  postmd build --source content --out public`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "postmd %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "설정 파일 경로 (기본: .postmd.yaml 또는 ~/.postmd/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "상세 출력")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and builds the logger.
func setup() error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	loaded, err := loader.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	loaded.ApplyEnv()
	cfg = loaded

	l, err := newLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

func newLoader() (*config.Loader, error) {
	if configFile != "" {
		return config.NewLoaderWithPath(configFile), nil
	}
	loader, err := config.Discover(".")
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	return loader, nil
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	switch {
	case verbose:
		lvl = zapcore.DebugLevel
	case quiet:
		lvl = zapcore.ErrorLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}

func currentConfig() *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parserOptions() parser.Options {
	c := currentConfig()
	return parser.Options{
		FrontMatter:   c.Parse.FrontMatter,
		ExcerptLength: c.Parse.ExcerptLength,
	}
}

func renderOptions() render.Options {
	c := currentConfig()
	opts := render.DefaultOptions()
	opts.WordWrap = c.Render.WordWrap
	opts.Color = c.Render.Color
	opts.GlamourStyle = c.Render.GlamourStyle
	opts.FrontMatter = c.Render.FrontMatter
	return opts
}

// lookupRenderer resolves a renderer name against the built-in registry.
func lookupRenderer(name string, opts render.Options) (render.Renderer, error) {
	registry := render.NewRegistry(opts)
	rd, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (지원: %v)", err, registry.List())
	}
	return rd, nil
}
