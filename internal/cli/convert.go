package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roboco-io/postmd/internal/document"
)

var (
	convertOutput      string
	convertFormat      string
	convertWrap        int
	convertColor       bool
	convertStyle       string
	convertFrontMatter bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "포스트 하나를 변환",
	Long: `포스트 파일 하나를 지정한 형식으로 변환합니다.

출력 형식은 renderers 명령으로 확인할 수 있습니다.
(markdown, html, text, terminal, json)

환경 변수:
  POSTMD_FORMAT=xxx   기본 출력 형식
  POSTMD_COLOR=true   text 출력에 색상 적용
  NO_COLOR=1          색상 비활성화

예시:
  postmd convert post.md
  postmd convert post.md -o post.html
  postmd convert post.md -f terminal --style dracula
  postmd convert post.md -f text --wrap 72 --color`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "출력 형식 (기본: 설정의 output.format)")
	convertCmd.Flags().IntVar(&convertWrap, "wrap", 80, "줄 바꿈 너비 (0: 사용 안 함)")
	convertCmd.Flags().BoolVar(&convertColor, "color", false, "text 출력에 색상 적용")
	convertCmd.Flags().StringVar(&convertStyle, "style", "auto", "terminal 출력 glamour 스타일")
	convertCmd.Flags().BoolVar(&convertFrontMatter, "front-matter", false, "메타데이터를 출력 앞부분에 포함")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	log := currentLogger()

	opts := renderOptions()
	flags := cmd.Flags()
	if flags.Changed("wrap") {
		opts.WordWrap = convertWrap
	}
	if flags.Changed("color") {
		opts.Color = convertColor
	}
	if flags.Changed("style") {
		opts.GlamourStyle = convertStyle
	}
	if flags.Changed("front-matter") {
		opts.FrontMatter = convertFrontMatter
	}

	format := currentConfig().Output.Format
	if convertFormat != "" {
		format = convertFormat
	}
	rd, err := lookupRenderer(format, opts)
	if err != nil {
		return err
	}

	doc, err := document.Load(inputPath, parserOptions())
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}
	log.Debug("parsed document",
		zap.String("source", inputPath),
		zap.Int("blocks", len(doc.Content)),
		zap.String("renderer", rd.Name()))

	if convertOutput == "" {
		return rd.Render(cmd.OutOrStdout(), doc)
	}

	var buf bytes.Buffer
	if err := rd.Render(&buf, doc); err != nil {
		return fmt.Errorf("변환 실패: %w", err)
	}
	if err := os.WriteFile(convertOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", convertOutput)
	}
	return nil
}
