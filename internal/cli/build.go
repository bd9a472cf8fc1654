package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roboco-io/postmd/internal/batch"
)

// buildFlags holds the flags shared by build and watch.
type buildFlags struct {
	source      string
	pattern     string
	out         string
	format      string
	concurrency int
	drafts      bool
	index       string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "포스트 디렉토리 (기본: 설정의 content.dir)")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "포스트 파일 glob 패턴 (기본: **/*.md)")
	cmd.Flags().StringVar(&f.out, "out", "", "출력 디렉토리 (기본: 설정의 output.dir)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "출력 형식 (기본: 설정의 output.format)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "동시 처리 파일 수 (0: CPU 수)")
	cmd.Flags().BoolVar(&f.drafts, "drafts", false, "draft 포스트 포함")
	cmd.Flags().StringVar(&f.index, "index", "", "포스트 목록 JSON 파일 경로")
}

// options merges the flags over the loaded configuration.
func (f *buildFlags) options(cmd *cobra.Command) (batch.Options, error) {
	c := currentConfig()
	flags := cmd.Flags()

	opts := batch.Options{
		SourceDir:     c.Content.Dir,
		Pattern:       c.Content.Pattern,
		OutputDir:     c.Output.Dir,
		Parser:        parserOptions(),
		Concurrency:   c.Build.Concurrency,
		IncludeDrafts: c.Build.Drafts,
		Logger:        currentLogger(),
	}
	if f.source != "" {
		opts.SourceDir = f.source
	}
	if f.pattern != "" {
		opts.Pattern = f.pattern
	}
	if f.out != "" {
		opts.OutputDir = f.out
	}
	if flags.Changed("concurrency") {
		opts.Concurrency = f.concurrency
	}
	if flags.Changed("drafts") {
		opts.IncludeDrafts = f.drafts
	}

	format := c.Output.Format
	if f.format != "" {
		format = f.format
	}
	rd, err := lookupRenderer(format, renderOptions())
	if err != nil {
		return batch.Options{}, err
	}
	opts.Renderer = rd
	return opts, nil
}

var buildArgs buildFlags

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "포스트 디렉토리 전체를 변환",
	Long: `포스트 디렉토리의 파일을 병렬로 변환하여 출력 디렉토리에 저장합니다.

하위 디렉토리 구조는 그대로 유지되며, 파일 확장자는 출력 형식에 맞게
바뀝니다. draft: true 인 포스트는 --drafts 플래그가 없으면 건너뜁니다.
하나라도 실패하면 0이 아닌 종료 코드를 반환합니다.

예시:
  postmd build
  postmd build --source content --out public --format html
  postmd build --pattern "blog/**/*.md" --index public/index.json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildArgs.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := buildArgs.options(cmd)
	if err != nil {
		return err
	}

	result, err := batch.Build(commandContext(cmd), opts)
	if err != nil {
		return fmt.Errorf("빌드 실패: %w", err)
	}

	if !quiet {
		printBuildSummary(cmd.ErrOrStderr(), result)
	}

	if buildArgs.index != "" {
		if err := batch.WriteIndex(buildArgs.index, batch.Index(result)); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "목록 저장: %s\n", buildArgs.index)
		}
	}

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d/%d 파일 변환 실패", failed, len(result.Files))
	}
	return nil
}

func printBuildSummary(w io.Writer, result *batch.Result) {
	for _, f := range result.Files {
		if f.Err != nil {
			fmt.Fprintf(w, "  ✗ %s: %v\n", f.Source, f.Err)
		}
	}
	fmt.Fprintf(w, "빌드 완료: %d개 변환, %d개 건너뜀, %d개 실패 (%s)\n",
		result.Built(), result.Skipped(), result.Failed(), result.Elapsed.Round(time.Millisecond))
}
