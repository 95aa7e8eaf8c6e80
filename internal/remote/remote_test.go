package remote

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"snes2db9/app"
	"snes2db9/db9"
	"snes2db9/hal"
	"snes2db9/pins"
	"snes2db9/snes"
)

func startBufServer(t *testing.T, pad Pad, st func() app.Status) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	srv := NewServer(pad, st, nil)
	srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestSetButtonsPressesPad(t *testing.T) {
	pad := hal.NewSimPad(false)
	c := startBufServer(t, pad, func() app.Status { return app.Status{} })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, c.SetButtons(ctx, snes.ButtonB|snes.ButtonLeft))
	assert.Equal(t, uint16(snes.ButtonB|snes.ButtonLeft), pad.Buttons())

	require.NoError(t, c.SetButtons(ctx, snes.ButtonNone))
	assert.Zero(t, pad.Buttons())
}

func TestSetButtonsRejectsUnusedBits(t *testing.T) {
	pad := hal.NewSimPad(false)
	c := startBufServer(t, pad, func() app.Status { return app.Status{} })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.SetButtons(ctx, snes.Buttons(0x0001))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Zero(t, pad.Buttons())
}

func TestGetState(t *testing.T) {
	pad := hal.NewSimPad(false)
	pad.SetButtons(uint16(snes.ButtonA))

	var levels pins.Levels
	levels[pins.Clock] = pins.High
	st := app.Status{
		Buttons:    snes.ButtonA,
		Outputs:    db9.Up,
		Suppressed: false,
		ReadCycles: 42,
		Pins:       levels,
	}
	st.Sched.Ticks = 4000
	c := startBufServer(t, pad, func() app.Status { return st })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", got["buttons"])
	assert.Equal(t, "UP", got["outputs"])
	assert.Equal(t, float64(db9.Up), got["outputs_raw"])
	assert.Equal(t, float64(snes.ButtonA), got["pad"])
	assert.Equal(t, float64(42), got["read_cycles"])
	assert.Equal(t, float64(4000), got["ticks"])
	assert.Equal(t, false, got["suppressed"])
	require.Len(t, got["pins"], pins.Count)
	assert.Equal(t, "H", got["pins"].([]any)[pins.Clock])
}
