// Package output renders decoded headers for the command line.
package output

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/sigmactl/internal/protocol/header"
	"gopkg.in/yaml.v3"
)

// FieldView is the printable form of one header field.
type FieldView struct {
	Name   string `json:"name" yaml:"name"`
	Offset int    `json:"offset" yaml:"offset"`
	Size   int    `json:"size" yaml:"size"`
	Value  uint64 `json:"value" yaml:"value"`
}

// HeaderView is the printable form of a header and its packet context.
type HeaderView struct {
	Variant        string      `json:"variant" yaml:"variant"`
	Operation      string      `json:"operation" yaml:"operation"`
	Size           int         `json:"size" yaml:"size"`
	Continuous     bool        `json:"continuous" yaml:"continuous"`
	Safeload       bool        `json:"safeload" yaml:"safeload"`
	CarriesPayload bool        `json:"carries_payload" yaml:"carries_payload"`
	Fields         []FieldView `json:"fields" yaml:"fields"`
	Hex            string      `json:"hex,omitempty" yaml:"hex,omitempty"`
	Payload        string      `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewHeaderView snapshots h. Hex holds the serialized header when it encodes.
func NewHeaderView(variantName string, h *header.Header, payload []byte) HeaderView {
	v := HeaderView{
		Variant:        variantName,
		Size:           h.Size(),
		Continuous:     h.IsContinuous(),
		Safeload:       h.IsSafeload(),
		CarriesPayload: h.CarriesPayload(),
		Payload:        hex.EncodeToString(payload),
	}
	if k, err := h.Operation(); err == nil {
		v.Operation = k.String()
	}
	for f := range h.All() {
		v.Fields = append(v.Fields, FieldView{Name: string(f.Name), Offset: f.Offset, Size: f.Size, Value: f.Value})
	}
	if b, err := h.Bytes(); err == nil {
		v.Hex = hex.EncodeToString(b)
	}
	return v
}

// Formatter renders header views.
type Formatter interface {
	Format(views ...HeaderView) (string, error)
}

// NewFormatter returns a Formatter for "table" (default), "json" or "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormatter{}
	case "yaml":
		return YAMLFormatter{}
	default:
		return TableFormatter{}
	}
}

type TableFormatter struct{}

func (TableFormatter) Format(views ...HeaderView) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\tsize=%d\tcontinuous=%t\tpayload=%t\n", v.Variant, v.Operation, v.Size, v.Continuous, v.CarriesPayload)
		fmt.Fprintln(w, "NAME\tOFFSET\tSIZE\tVALUE")
		for _, f := range v.Fields {
			fmt.Fprintf(w, "%s\t%d\t%d\t0x%0*X\n", f.Name, f.Offset, f.Size, max(2*f.Size, 1), f.Value)
		}
		if v.Hex != "" {
			fmt.Fprintf(w, "hex\t%s\n", v.Hex)
		}
		if v.Payload != "" {
			fmt.Fprintf(w, "payload\t%s\n", v.Payload)
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type JSONFormatter struct{}

func (JSONFormatter) Format(views ...HeaderView) (string, error) {
	var data any = views
	if len(views) == 1 {
		data = views[0]
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("output: json: %w", err)
	}
	return string(b) + "\n", nil
}

type YAMLFormatter struct{}

func (YAMLFormatter) Format(views ...HeaderView) (string, error) {
	var data any = views
	if len(views) == 1 {
		data = views[0]
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("output: yaml: %w", err)
	}
	return string(b), nil
}
