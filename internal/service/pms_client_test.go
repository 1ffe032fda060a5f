package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomops-data/internal/config"
	"roomops-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchRoomStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/rooms/status", r.URL.Path)
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("date"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","rooms":[
			{"room_number":"305","occupied":false,"departure":true,"linen_change":false},
			{"room_number":"306","occupied":true,"departure":false,"towel_change":true}
		]}`))
	}))
	defer srv.Close()

	client := NewPMSClient(config.PMSConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: 5}, zap.NewNop())

	rooms, err := client.FetchRoomStatuses(context.Background(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.True(t, rooms[0].Departure)
	assert.True(t, rooms[1].TowelChange)
}

func TestFetchRoomStatuses_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":1001,"msg":"invalid key","rooms":[]}`))
	}))
	defer srv.Close()

	client := NewPMSClient(config.PMSConfig{BaseURL: srv.URL, Timeout: 5}, zap.NewNop())

	_, err := client.FetchRoomStatuses(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestSyncRoomStatuses_RulesAndResilience(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","rooms":[
			{"room_number":"101","occupied":false,"departure":true},
			{"room_number":"102","occupied":true,"departure":false,"towel_change":true},
			{"room_number":"103","occupied":false,"departure":false},
			{"room_number":"broken","occupied":true}
		]}`))
	}))
	defer srv.Close()

	client := NewPMSClient(config.PMSConfig{BaseURL: srv.URL, Timeout: 5}, zap.NewNop())
	rooms := &fakeRoomsRepo{
		upserts:   map[string]repository.RoomStatusUpdate{},
		upsertErr: map[string]bool{"broken": true},
	}
	svc := NewPMSSyncService(client, rooms, zap.NewNop())

	updated, err := svc.SyncRoomStatuses(context.Background(), "h1", time.Now())
	require.NoError(t, err)
	// 103 空置跳过，broken 失败但不中断
	assert.Equal(t, 2, updated)

	// 退房房强制换床品
	assert.True(t, rooms.upserts["101"].IsCheckoutRoom)
	assert.True(t, rooms.upserts["101"].LinenChangeRequired)
	// 在住房保持 daily 标记
	assert.False(t, rooms.upserts["102"].IsCheckoutRoom)
	assert.True(t, rooms.upserts["102"].TowelChangeRequired)
	// 空置房不触碰
	_, touched := rooms.upserts["103"]
	assert.False(t, touched)
}
