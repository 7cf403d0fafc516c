package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr

	lookups []string
}

func (r *stubResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	r.lookups = append(r.lookups, "mx:"+name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mx, ok := r.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (r *stubResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	r.lookups = append(r.lookups, "ip:"+host)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ips, ok := r.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no such host")
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		mx:  map[string][]*net.MX{"mail.test": {{Host: "mx.mail.test.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"web.test": {{IP: net.ParseIP("192.0.2.10")}}},
	}
}

func TestIsEmailDomainValid(t *testing.T) {
	ctx := context.Background()
	r := newStubResolver()

	assert.True(t, IsEmailDomainValid(ctx, r, "rita@mail.test"))
	assert.True(t, IsEmailDomainValid(ctx, r, "rita@web.test"))
	assert.False(t, IsEmailDomainValid(ctx, r, "rita@nowhere.test"))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	r := newStubResolver()

	for _, email := range []string{"", "rita", "rita@", "@mail.test"} {
		assert.False(t, IsEmailDomainValid(context.Background(), r, email), email)
	}
	assert.Empty(t, r.lookups)
}

func TestIsEmailDomainValidStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newStubResolver()

	assert.False(t, IsEmailDomainValid(ctx, r, "rita@mail.test"))
	assert.Equal(t, []string{"mx:mail.test"}, r.lookups)
}
