package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/postmd/internal/render"
)

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "사용 가능한 출력 형식 목록",
	Long: `지원하는 출력 형식(렌더러)과 출력 파일 확장자를 표시합니다.

기본 형식은 설정의 output.format 또는 POSTMD_FORMAT 환경 변수로 정합니다.`,
	RunE: runRenderers,
}

func init() {
	rootCmd.AddCommand(renderersCmd)
}

func runRenderers(cmd *cobra.Command, args []string) error {
	registry := render.NewRegistry(renderOptions())
	current := currentConfig().Output.Format

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "사용 가능한 출력 형식:")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  이름\t확장자\t설명\t")
	fmt.Fprintln(w, "  ----\t------\t----\t")
	for _, name := range registry.List() {
		rd, err := registry.Get(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == current {
			marker = "(기본)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", rd.Name(), rd.Extension(), rd.Description(), marker)
	}
	return w.Flush()
}
