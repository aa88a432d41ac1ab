/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
)

// MessageLogEntry is one line of the server message log
type MessageLogEntry struct {
	ID        int    `json:"ID"`
	ThreadID  int    `json:"ThreadID"`
	SessionID int    `json:"SessionID"`
	Level     string `json:"Level"`
	TimeStamp string `json:"TimeStamp"`
	Logger    string `json:"Logger"`
	Message   string `json:"Message"`
}

// TransactionLogEntry is one recorded cell change
type TransactionLogEntry struct {
	ID              int         `json:"ID"`
	ChangeSetID     string      `json:"ChangeSetID"`
	TimeStamp       string      `json:"TimeStamp"`
	ReplicationTime string      `json:"ReplicationTime"`
	User            string      `json:"User"`
	Cube            string      `json:"Cube"`
	Tuple           []string    `json:"Tuple"`
	OldValue        interface{} `json:"OldValue"`
	NewValue        interface{} `json:"NewValue"`
	StatusMessage   string      `json:"StatusMessage"`
}

// AuditLogEntry is one recorded object or security change
type AuditLogEntry struct {
	ID            string `json:"ID"`
	TimeStamp     string `json:"TimeStamp"`
	UserName      string `json:"UserName"`
	ObjectType    string `json:"ObjectType"`
	ObjectName    string `json:"ObjectName"`
	KeyDetail     string `json:"KeyDetail"`
	DetailMessage string `json:"Details"`
}

// LogQuery narrows a log listing
type LogQuery struct {
	Reverse bool
	Since   string
	Until   string
	User    string
	Cube    string
	Top     int
}

// ServerService covers server-level concerns: logs, data persistence and the
// admin host registry
type ServerService struct {
	ObjectService
}

// NewServerService creates the service on a shared session
func NewServerService(client *rest.Client) *ServerService {
	return &ServerService{ObjectService: NewObjectService(client)}
}

// GetMessageLogEntries reads the server message log
func (s *ServerService) GetMessageLogEntries(ctx context.Context, query LogQuery) ([]MessageLogEntry, error) {
	if err := s.rest.RequireAdmin(ctx, "GetMessageLogEntries"); err != nil {
		return nil, err
	}
	url := "/MessageLogEntries"
	var options []string
	if query.Reverse {
		options = append(options, "$orderby=TimeStamp desc")
	}
	var filters []string
	if query.Since != "" {
		filters = append(filters, fmt.Sprintf("TimeStamp ge %s", query.Since))
	}
	if query.Until != "" {
		filters = append(filters, fmt.Sprintf("TimeStamp le %s", query.Until))
	}
	if len(filters) > 0 {
		options = append(options, "$filter="+strings.Join(filters, " and "))
	}
	if query.Top > 0 {
		options = append(options, fmt.Sprintf("$top=%d", query.Top))
	}
	if len(options) > 0 {
		url += "?" + strings.Join(options, "&")
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []MessageLogEntry `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding message log")
	}
	return payload.Value, nil
}

// GetTransactionLogEntries reads the recorded cell changes
func (s *ServerService) GetTransactionLogEntries(ctx context.Context, query LogQuery) ([]TransactionLogEntry, error) {
	if err := s.rest.RequireAdmin(ctx, "GetTransactionLogEntries"); err != nil {
		return nil, err
	}
	url := "/TransactionLogEntries"
	var options []string
	if query.Reverse {
		options = append(options, "$orderby=TimeStamp desc")
	}
	var filters []string
	if query.Since != "" {
		filters = append(filters, fmt.Sprintf("TimeStamp ge %s", query.Since))
	}
	if query.Until != "" {
		filters = append(filters, fmt.Sprintf("TimeStamp le %s", query.Until))
	}
	if query.User != "" {
		filters = append(filters, rest.FormatURL("User eq '%s'", query.User))
	}
	if query.Cube != "" {
		filters = append(filters, rest.FormatURL("Cube eq '%s'", query.Cube))
	}
	if len(filters) > 0 {
		options = append(options, "$filter="+strings.Join(filters, " and "))
	}
	if query.Top > 0 {
		options = append(options, fmt.Sprintf("$top=%d", query.Top))
	}
	if len(options) > 0 {
		url += "?" + strings.Join(options, "&")
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []TransactionLogEntry `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding transaction log")
	}
	return payload.Value, nil
}

// GetAuditLogEntries reads the audit log. Requires OperationsAdmin and the
// AuditLogOn configuration.
func (s *ServerService) GetAuditLogEntries(ctx context.Context, query LogQuery) ([]AuditLogEntry, error) {
	if err := s.rest.RequireOpsAdmin(ctx, "GetAuditLogEntries"); err != nil {
		return nil, err
	}
	url := "/AuditLogEntries"
	var options []string
	if query.Reverse {
		options = append(options, "$orderby=TimeStamp desc")
	}
	if query.Since != "" {
		options = append(options, fmt.Sprintf("$filter=TimeStamp ge %s", query.Since))
	}
	if query.Top > 0 {
		options = append(options, fmt.Sprintf("$top=%d", query.Top))
	}
	if len(options) > 0 {
		url += "?" + strings.Join(options, "&")
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []AuditLogEntry `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding audit log")
	}
	return payload.Value, nil
}

// SaveData persists all in-memory changes of every cube to disk
func (s *ServerService) SaveData(ctx context.Context) error {
	processes := NewProcessService(s.rest)
	result, err := processes.ExecuteTICode(ctx, []string{"SaveDataAll;"}, nil)
	if err != nil {
		return err
	}
	if !result.Successful() {
		return rest.NewError("SaveDataAll failed with status '" + result.Status + "'")
	}
	return nil
}

// DeleteAllPersistedFeeders drops the feeder files persisted on disk, forcing
// a full feeder recalculation on the next restart
func (s *ServerService) DeleteAllPersistedFeeders(ctx context.Context) error {
	processes := NewProcessService(s.rest)
	result, err := processes.ExecuteTICode(ctx, []string{"DeleteAllPersistentFeeders;"}, nil)
	if err != nil {
		return err
	}
	if !result.Successful() {
		return rest.NewError("DeleteAllPersistentFeeders failed with status '" + result.Status + "'")
	}
	return nil
}

// ActivateAuditLog enables audit logging through the static configuration
func (s *ServerService) ActivateAuditLog(ctx context.Context) error {
	config := NewConfigurationService(s.rest)
	return config.UpdateStatic(ctx, map[string]interface{}{
		"Administration": map[string]interface{}{
			"AuditLog": map[string]interface{}{"Enable": true},
		},
	})
}

// DeactivateAuditLog disables audit logging through the static configuration
func (s *ServerService) DeactivateAuditLog(ctx context.Context) error {
	config := NewConfigurationService(s.rest)
	return config.UpdateStatic(ctx, map[string]interface{}{
		"Administration": map[string]interface{}{
			"AuditLog": map[string]interface{}{"Enable": false},
		},
	})
}

// StartPerformanceMonitor switches the performance monitor on
func (s *ServerService) StartPerformanceMonitor(ctx context.Context) error {
	config := NewConfigurationService(s.rest)
	return config.UpdateStatic(ctx, map[string]interface{}{
		"Administration": map[string]interface{}{"PerformanceMonitorOn": true},
	})
}

// StopPerformanceMonitor switches the performance monitor off
func (s *ServerService) StopPerformanceMonitor(ctx context.Context) error {
	config := NewConfigurationService(s.rest)
	return config.UpdateStatic(ctx, map[string]interface{}{
		"Administration": map[string]interface{}{"PerformanceMonitorOn": false},
	})
}

// GetAllFromAdminHost lists the servers registered on an admin host. The
// registry speaks plain HTTP on the admin port.
func (s *ServerService) GetAllFromAdminHost(ctx context.Context, adminHost string) ([]objects.Server, error) {
	url := fmt.Sprintf("http://%s:5895/api/v1/Servers", adminHost)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.ServersFromJSON(resp.Body)
}
