package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
)

type JSONFormatter struct {
	out io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{out: w}
}

func (f *JSONFormatter) FormatSamples(samples []model.Sample) error {
	if samples == nil {
		samples = []model.Sample{}
	}
	return f.encode(samples)
}

func (f *JSONFormatter) FormatSessions(entries []interaction.SessionEntry) error {
	records := make([]SessionRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, NewSessionRecord(e))
	}
	return f.encode(records)
}

func (f *JSONFormatter) encode(v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.out.Write(data)
	return err
}
