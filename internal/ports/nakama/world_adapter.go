package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const worldListPageSize = 100

// NakamaBusinessAdapter implements ports.BusinessPort by listing the
// system-owned business documents.
type NakamaBusinessAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaBusinessAdapter creates a business adapter.
func NewNakamaBusinessAdapter(nk runtime.NakamaModule) *NakamaBusinessAdapter {
	return &NakamaBusinessAdapter{nk: nk}
}

// ListProtected returns every business covered by protection payments.
func (a *NakamaBusinessAdapter) ListProtected(ctx context.Context) ([]ports.Business, error) {
	var businesses []ports.Business
	cursor := ""
	for {
		objects, next, err := a.nk.StorageList(ctx, "", "", CollectionBusinesses, worldListPageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list businesses: %w", err)
		}
		for _, obj := range objects {
			var b ports.Business
			if err := json.Unmarshal([]byte(obj.Value), &b); err != nil {
				return nil, fmt.Errorf("failed to unmarshal business %s: %w", obj.Key, err)
			}
			if b.ID == "" {
				b.ID = obj.Key
			}
			businesses = append(businesses, b)
		}
		if next == "" {
			break
		}
		cursor = next
	}
	return businesses, nil
}

// rumorDoc is the stored shape of one rumor.
type rumorDoc struct {
	Topic     string   `json:"topic"`
	Hops      int      `json:"hops"`
	MaxHops   int      `json:"max_hops"`
	Listeners []string `json:"listeners"`
}

// NakamaGossipAdapter implements ports.GossipPort over the rumor documents.
type NakamaGossipAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaGossipAdapter creates a gossip adapter.
func NewNakamaGossipAdapter(nk runtime.NakamaModule) *NakamaGossipAdapter {
	return &NakamaGossipAdapter{nk: nk}
}

// ActiveRumors lists rumors that still have hops left.
func (a *NakamaGossipAdapter) ActiveRumors(ctx context.Context) ([]ports.Rumor, error) {
	var rumors []ports.Rumor
	cursor := ""
	for {
		objects, next, err := a.nk.StorageList(ctx, "", "", CollectionRumors, worldListPageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list rumors: %w", err)
		}
		for _, obj := range objects {
			var doc rumorDoc
			if err := json.Unmarshal([]byte(obj.Value), &doc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal rumor %s: %w", obj.Key, err)
			}
			if doc.MaxHops > 0 && doc.Hops >= doc.MaxHops {
				continue
			}
			rumors = append(rumors, ports.Rumor{ID: obj.Key, Topic: doc.Topic, Hops: doc.Hops})
		}
		if next == "" {
			break
		}
		cursor = next
	}
	return rumors, nil
}

// Spread advances a rumor one hop and reports how many listeners heard it.
func (a *NakamaGossipAdapter) Spread(ctx context.Context, rumorID string) (int, error) {
	reads := []*runtime.StorageRead{
		{Collection: CollectionRumors, Key: rumorID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return 0, fmt.Errorf("failed to read rumor: %w", err)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	var doc rumorDoc
	if err := json.Unmarshal([]byte(objects[0].Value), &doc); err != nil {
		return 0, fmt.Errorf("failed to unmarshal rumor: %w", err)
	}

	doc.Hops++
	value, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal rumor: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionRumors,
			Key:             rumorID,
			Value:           string(value),
			Version:         objects[0].Version,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return 0, fmt.Errorf("failed to write rumor: %w", err)
	}
	return len(doc.Listeners), nil
}

var (
	_ ports.BusinessPort = (*NakamaBusinessAdapter)(nil)
	_ ports.GossipPort   = (*NakamaGossipAdapter)(nil)
)
