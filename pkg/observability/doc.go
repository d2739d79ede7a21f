/*
Package observability turns validation events into Prometheus metrics.

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	eng, err := formcheck.New(ctx, formcheck.WithHooks(metrics.Hooks()))

Invalid fields are counted per schema and key, so keep schema keys bounded.
*/
package observability
