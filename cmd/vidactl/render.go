package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"vida-fed/internal/service"
	"vida-fed/internal/synth"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// 可输出的投影类型
const (
	kindSummary    = "summary"
	kindDetail     = "detail"
	kindFederation = "federation"
)

var kinds = []string{kindSummary, kindDetail, kindFederation}

var errUnknownKind = errors.New("unknown projection kind")

func newRenderCmd() *cobra.Command {
	var (
		kind    string
		input   string
		blocked bool
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "由视频快照 JSON 生成摘要、详情或联邦对象",
		Example: "  vidactl render --kind federation --input snapshot.json\n" +
			"  cat snapshot.json | vidactl render --kind detail --input -",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			mod := synth.Moderation{Blacklisted: blocked, Reason: reason}
			return render(cmd.OutOrStdout(), synth.New(service.SynthConfig(cfg)), kind, in, mod)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", kindDetail, "投影类型: summary, detail, federation")
	cmd.Flags().StringVarP(&input, "input", "i", "-", "快照文件，- 表示标准输入")
	cmd.Flags().BoolVar(&blocked, "blacklisted", false, "详情中标记为已屏蔽")
	cmd.Flags().StringVar(&reason, "reason", "", "屏蔽原因")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func render(w io.Writer, sy *synth.Synthesizer, kind string, in io.Reader, mod synth.Moderation) error {
	if !lo.Contains(kinds, kind) {
		return fmt.Errorf("%w: %q", errUnknownKind, kind)
	}

	var video synth.Video
	if err := json.NewDecoder(in).Decode(&video); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	var out any
	switch kind {
	case kindSummary:
		out = sy.Summary(&video)
	case kindDetail:
		detail, err := sy.Detail(&video, mod)
		if err != nil {
			return err
		}
		out = detail
	case kindFederation:
		obj, err := sy.Federation(&video)
		if err != nil {
			return err
		}
		obj.Context = synth.ActivityStreamsContext()
		out = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
