package main

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jongio/smith-core/cliout"
)

// printMetrics writes every sample in reg as one field per series, named
// metric{label=value,...}. Histograms contribute their count and sum.
func printMetrics(f *cliout.Formatter, reg prometheus.Gatherer, format cliout.Format) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var fields []cliout.Field
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			name := mf.GetName() + "{" + strings.Join(labels, ",") + "}"

			switch {
			case m.GetCounter() != nil:
				fields = append(fields, cliout.F(name, cliout.Number(m.GetCounter().GetValue())))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fields = append(fields,
					cliout.F(name+"_count", cliout.Int(int64(h.GetSampleCount()))),
					cliout.F(name+"_sum", cliout.Number(h.GetSampleSum())))
			}
		}
	}
	return f.Print(cliout.Mapping(fields...).Named("Metrics"), format)
}
