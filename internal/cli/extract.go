package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/postmd/internal/content"
	"github.com/roboco-io/postmd/internal/document"
	"github.com/roboco-io/postmd/internal/ir"
	"github.com/roboco-io/postmd/internal/render"
)

var (
	extractOutput      string
	extractFormat      string
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "포스트에서 IR(중간 표현) 추출",
	Long: `포스트를 파싱하여 IR(Intermediate Representation)을 추출합니다.

렌더링 없이 구조화된 데이터를 출력합니다.
출력 형식은 JSON 또는 텍스트(요약)를 지원합니다.
JSON 출력은 다시 postmd의 입력으로 사용할 수 있습니다.

예시:
  postmd extract post.md
  postmd extract post.md -o post.json
  postmd extract post.md --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 (json, text)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	doc, err := document.Load(inputPath, parserOptions())
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}

	output, err := formatOutput(doc, extractFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}
	if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "IR 추출 완료: %s\n", extractOutput)
	}
	return nil
}

func formatOutput(doc *ir.Document, format string) (string, error) {
	switch format {
	case "json":
		var buf bytes.Buffer
		if err := render.NewJSON(render.Options{Pretty: extractPrettyPrint}).Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil

	case "text":
		return formatAsText(doc), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatAsText(doc *ir.Document) string {
	var sb strings.Builder

	// Metadata
	meta := doc.Metadata
	if meta.Title != "" {
		sb.WriteString(fmt.Sprintf("제목: %s\n", meta.Title))
	}
	if meta.Author != "" {
		sb.WriteString(fmt.Sprintf("작성자: %s\n", meta.Author))
	}
	if meta.Date != "" {
		sb.WriteString(fmt.Sprintf("날짜: %s\n", meta.Date))
	}
	if len(meta.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("태그: %s\n", strings.Join(meta.Tags, ", ")))
	}
	words := content.WordCount(doc.Content)
	sb.WriteString(fmt.Sprintf("단어 수: %d (약 %d분)\n", words, content.ReadingMinutes(words)))

	// Outline
	if outline := content.Outline(doc.Content); len(outline) > 0 {
		sb.WriteString("\n목차:\n")
		for _, e := range outline {
			indent := strings.Repeat("  ", e.Level)
			sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, strings.Repeat("#", e.Level), e.Text))
		}
	}

	// Block counts
	sb.WriteString("\n블록:\n")
	for _, t := range []ir.BlockType{
		ir.BlockTypeHeading,
		ir.BlockTypeOrderedItem,
		ir.BlockTypeUnorderedItem,
		ir.BlockTypeParagraph,
	} {
		sb.WriteString(fmt.Sprintf("  %-16s%d\n", t, doc.Count(t)))
	}

	return sb.String()
}
