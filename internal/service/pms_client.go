package service

import (
	"context"
	"fmt"
	"time"

	"roomops-data/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PMSRoomStatus PMS 返回的单间房态
type PMSRoomStatus struct {
	RoomNumber  string `json:"room_number"`
	Occupied    bool   `json:"occupied"`
	Departure   bool   `json:"departure"` // 当日退房
	TowelChange bool   `json:"towel_change"`
	LinenChange bool   `json:"linen_change"`
}

// PMSStatusResponse PMS 房态接口响应
type PMSStatusResponse struct {
	Code  int             `json:"code"`
	Msg   string          `json:"msg"`
	Rooms []PMSRoomStatus `json:"rooms"`
}

// PMSClient 酒店 PMS REST 客户端（拉取当日房态）
type PMSClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewPMSClient 创建 PMS 客户端
func NewPMSClient(cfg config.PMSConfig, logger *zap.Logger) *PMSClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("X-Api-Key", cfg.APIKey)
	}
	return &PMSClient{httpClient: client, logger: logger}
}

// FetchRoomStatuses 拉取指定日期的房态列表
func (c *PMSClient) FetchRoomStatuses(ctx context.Context, date time.Time) ([]PMSRoomStatus, error) {
	var response PMSStatusResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("date", date.Format("2006-01-02")).
		SetResult(&response).
		Get("/api/v1/rooms/status")
	if err != nil {
		return nil, fmt.Errorf("failed to call PMS API: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("PMS API returned HTTP %d", resp.StatusCode())
	}
	if response.Code != 0 {
		return nil, fmt.Errorf("PMS API error: %s (code: %d)", response.Msg, response.Code)
	}
	return response.Rooms, nil
}
