package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/sigmactl/internal/output"
	"github.com/danmuck/sigmactl/internal/protocol/packet"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode one or more packets from a hex dump",
		Long: `Decode reads packets back to back from the given hex dump. The leading
operation byte of each packet selects the header layout. Whitespace and
colons in the dump are ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseHex(strings.Join(args, ""))
			if err != nil {
				return err
			}
			views, err := a.decodeAll(raw)
			if err != nil {
				return err
			}
			return a.print(cmd, views...)
		},
	}
}

func (a *app) decodeAll(raw []byte) ([]output.HeaderView, error) {
	r := bytes.NewReader(raw)
	var views []output.HeaderView
	for {
		offset := len(raw) - r.Len()
		p, err := packet.Read(r, a.gen, a.cfg.Limits)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode packet at byte %d: %w", offset, err)
		}
		views = append(views, output.NewHeaderView(a.cfg.Variant, p.Header, p.Payload))
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("decode: no packets in input")
	}
	return views, nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", "\n", "", "\t", "", ":", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}
