package convert

import (
	"context"
	"fmt"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// Dispatcher routes conversions to the remote service when one is configured
// and answering, and falls back to the local pipeline otherwise. Remote
// trouble never fails a conversion on its own; it only produces a notice.
type Dispatcher struct {
	Remote *Remote // nil means local only
	Local  Converter
}

// NewDispatcher builds a dispatcher. An empty remoteURL means local only.
func NewDispatcher(remoteURL string) *Dispatcher {
	d := &Dispatcher{Local: Local{}}
	if remoteURL != "" {
		d.Remote = NewRemote(remoteURL)
	}
	return d
}

// Convert runs one conversion. The returned notice is non-empty when a remote
// service was configured but the local pipeline produced the result; callers
// surface it to the user without treating it as a failure.
func (d *Dispatcher) Convert(ctx context.Context, src []byte, opts lineart.Options) (*Result, string, error) {
	notice := ""
	if d.Remote != nil {
		if herr := d.Remote.Healthy(ctx); herr != nil {
			notice = fmt.Sprintf("remote service unavailable (%v); converted locally", herr)
		} else {
			res, rerr := d.Remote.Convert(ctx, src, opts)
			if rerr == nil {
				return res, "", nil
			}
			notice = fmt.Sprintf("remote conversion failed (%v); converted locally", rerr)
		}
	}
	local := d.Local
	if local == nil {
		local = Local{}
	}
	res, err := local.Convert(ctx, src, opts)
	if err != nil {
		return nil, "", fmt.Errorf("convert: %w", err)
	}
	return res, notice, nil
}
