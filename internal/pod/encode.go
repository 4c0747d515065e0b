package pod

import (
	"bytes"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/serializer/json"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var jsonSerializer = json.NewSerializerWithOptions(
	json.DefaultMetaFactory,
	clientgoscheme.Scheme,
	clientgoscheme.Scheme,
	json.SerializerOptions{},
)

// ParseFormat accepts "json" or "yaml".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format '%s', expected json or yaml", s)
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p *corev1.Pod, format Format) error {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal pod to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON, "":
		if err := jsonSerializer.Encode(p, w); err != nil {
			return fmt.Errorf("failed to marshal pod to JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format '%s'", format)
}

// Marshal returns the JSON encoding of p.
func Marshal(p *corev1.Pod) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
