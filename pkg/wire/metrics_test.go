package wire

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/status"
)

func TestCodecMetrics(t *testing.T) {
	// promauto registers on the process-wide default registry, so this
	// test owns the single Metrics instance.
	metrics := NewMetrics()
	codec := NewCodec(CodecConfig{Metrics: metrics})

	s := blockTestSchema(t)
	block := &RowBlock{}
	rb := schema.NewRowBuilder(s)
	rb.AddString("key")
	rb.AddString("value")
	rb.AddUint32(1)
	codec.AddRowToBlock(rb.Row(), block)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.rowsEncoded))
	require.Equal(t, float64(len("key")+len("value")), testutil.ToFloat64(metrics.indirectBytesTotal))

	_, st := codec.ExtractRowsFromBlock(s, block)
	require.True(t, st.IsOK())
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.blocksDecoded))

	_, st = codec.ExtractRowsFromBlock(s, &RowBlock{Rows: []byte("x")})
	require.True(t, st.IsCorruption())
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.decodeRejects.WithLabelValues(rejectTruncatedBlock)))

	codec.StatusToWire(status.New(status.Code(77), "novel"))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.unknownStatusCodes.WithLabelValues("encode")))

	codec.StatusFromWire(StatusDescriptor{Code: StatusCode(77)})
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.unknownStatusCodes.WithLabelValues("decode")))
}
