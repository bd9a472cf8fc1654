package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roboco-io/postmd/internal/batch"
	"github.com/roboco-io/postmd/internal/watch"
)

var watchArgs buildFlags

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "변경된 포스트를 자동으로 다시 변환",
	Long: `전체 빌드를 한 번 실행한 뒤 포스트 디렉토리를 감시하면서
변경된 파일만 다시 변환합니다. 삭제된 포스트의 출력 파일은 함께 삭제됩니다.

Ctrl+C로 종료합니다.

예시:
  postmd watch
  postmd watch --source content --out public --format html`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchArgs.register(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := watchArgs.options(cmd)
	if err != nil {
		return err
	}

	w, err := watch.New(opts)
	if err != nil {
		return fmt.Errorf("감시 초기화 실패: %w", err)
	}
	defer w.Stop()

	stderr := cmd.ErrOrStderr()
	w.OnBuild = func(res batch.FileResult) {
		if quiet {
			return
		}
		switch {
		case res.Err != nil:
			fmt.Fprintf(stderr, "  ✗ %s: %v\n", res.Source, res.Err)
		case res.Skipped:
			fmt.Fprintf(stderr, "  - %s (draft)\n", res.Source)
		default:
			fmt.Fprintf(stderr, "  ✓ %s → %s\n", res.Source, res.Output)
		}
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(stderr, "감시 중: %s (종료: Ctrl+C)\n", opts.SourceDir)
	}

	<-ctx.Done()

	if !quiet {
		s := w.Stats()
		fmt.Fprintf(stderr, "감시 종료: %d회 재변환, %d개 삭제, %d개 오류\n", s.Rebuilds, s.Removed, s.Errors)
	}
	return nil
}
