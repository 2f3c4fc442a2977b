package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/sigmactl/internal/output"
	"github.com/danmuck/sigmactl/internal/protocol/header"
	"github.com/danmuck/sigmactl/internal/protocol/packet"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		op         string
		sets       []string
		payloadHex string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a packet from field assignments",
		Example: `  sigmactl encode --op write --set chip_address=1 --set address=0x4000 --payload 00800000
  sigmactl encode --op read-request --set address=0x10 --set data_length=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseOperation(op)
			if err != nil {
				return err
			}
			h, err := header.NewHeaderForOperation(a.gen, k)
			if err != nil {
				return err
			}
			var assigned []header.FieldName
			for _, s := range sets {
				name, value, err := parseAssignment(s)
				if err != nil {
					return err
				}
				if err := h.Set(name, value); err != nil {
					return err
				}
				assigned = append(assigned, name)
			}
			if err := checkDerived(h, assigned); err != nil {
				return err
			}
			var payload []byte
			if payloadHex != "" {
				if payload, err = parseHex(payloadHex); err != nil {
					return err
				}
			}

			p := &packet.Packet{Header: h, Payload: payload}
			if _, err := p.Bytes(); err != nil {
				return err
			}
			return a.print(cmd, output.NewHeaderView(a.cfg.Variant, p.Header, p.Payload))
		},
	}
	cmd.Flags().StringVar(&op, "op", "write", "operation: write|read-request|read-response")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment name=value (repeatable)")
	cmd.Flags().StringVar(&payloadHex, "payload", "", "payload bytes as hex")
	return cmd
}

// checkDerived rejects assignments that the packet layer would overwrite:
// total_length always, data_length when it is taken from the payload.
func checkDerived(h *header.Header, assigned []header.FieldName) error {
	for _, name := range assigned {
		switch {
		case name == header.FieldTotalLength:
			return fmt.Errorf("%s is derived from header and payload size and cannot be set", name)
		case name == header.FieldDataLength && h.CarriesPayload():
			return fmt.Errorf("%s is derived from --payload on this operation and cannot be set", name)
		}
	}
	return nil
}

func parseOperation(raw string) (header.OperationKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "write", "w":
		return header.OpWrite, nil
	case "read-request", "read", "r":
		return header.OpReadRequest, nil
	case "read-response", "response":
		return header.OpReadResponse, nil
	}
	v, err := strconv.ParseUint(raw, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown operation %q", raw)
	}
	return header.ParseOperationKey(byte(v))
}

func parseAssignment(s string) (header.FieldName, uint64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid assignment %q: want name=value", s)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid value in %q: %w", s, err)
	}
	return header.FieldName(strings.TrimSpace(name)), v, nil
}
