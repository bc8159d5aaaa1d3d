// Package claims bridges completed inspections into the carrier's
// claims-management system over XML-RPC.
package claims

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/kolo/xmlrpc"
)

const (
	claimModel      = "claim.claim"
	attachmentModel = "claim.attachment"

	// StageInspectionReceived is the claim workflow stage set once the
	// field report is attached.
	StageInspectionReceived = "inspection_received"
)

// ErrClaimNotFound means no claim matches the inspection's claim
// number.
var ErrClaimNotFound = errors.New("claim not found")

// Client talks to the claims system's two XML-RPC endpoints: common
// for authentication, object for record operations.
type Client struct {
	URL      string
	Database string
	Username string
	Password string

	uid       int
	commonURL string
	objectURL string
}

// NewClient creates a claims-system client.
func NewClient(url, db, username, password string) *Client {
	return &Client{
		URL:       url,
		Database:  db,
		Username:  username,
		Password:  password,
		commonURL: fmt.Sprintf("%s/xmlrpc/2/common", url),
		objectURL: fmt.Sprintf("%s/xmlrpc/2/object", url),
	}
}

// Authenticate logs in and caches the user ID for object calls.
func (c *Client) Authenticate() (int, error) {
	client, err := xmlrpc.NewClient(c.commonURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{c.Database, c.Username, c.Password, make([]interface{}, 0)}
	var uid int
	if err := client.Call("authenticate", args, &uid); err != nil {
		return 0, fmt.Errorf("authentication failed: %w", err)
	}
	if uid == 0 {
		return 0, errors.New("authentication rejected: check credentials")
	}

	c.uid = uid
	return uid, nil
}

// Authenticated reports whether a login succeeded already.
func (c *Client) Authenticated() bool { return c.uid != 0 }

// execute runs one execute_kw call. A fresh transport per call keeps
// the client safe to use from the export loop and the HTTP handler at
// once.
func (c *Client) execute(model, method string, args []interface{}, kwargs map[string]interface{}, result interface{}) error {
	client, err := xmlrpc.NewClient(c.objectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	callArgs := []interface{}{c.Database, c.uid, c.Password, model, method, args}
	if kwargs != nil {
		callArgs = append(callArgs, kwargs)
	}
	if err := client.Call("execute_kw", callArgs, result); err != nil {
		return fmt.Errorf("%s.%s failed: %w", model, method, err)
	}
	return nil
}

// FindClaim resolves a claim number to the claim record ID.
func (c *Client) FindClaim(claimNumber string) (int64, error) {
	domain := []interface{}{
		[]interface{}{"number", "=", claimNumber},
	}

	var ids []int64
	err := c.execute(claimModel, "search", []interface{}{domain}, map[string]interface{}{"limit": 1}, &ids)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrClaimNotFound
	}
	return ids[0], nil
}

// AttachReport uploads the rendered PDF onto the claim.
func (c *Client) AttachReport(claimID int64, filename string, pdf []byte) (int64, error) {
	values := map[string]interface{}{
		"claim_id": claimID,
		"name":     filename,
		"mimetype": "application/pdf",
		"datas":    base64.StdEncoding.EncodeToString(pdf),
	}

	var id int64
	if err := c.execute(attachmentModel, "create", []interface{}{values}, nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// SetClaimStage advances the claim's workflow stage.
func (c *Client) SetClaimStage(claimID int64, stage string) error {
	args := []interface{}{
		[]int64{claimID},
		map[string]interface{}{"stage_code": stage},
	}

	var ok bool
	if err := c.execute(claimModel, "write", args, nil, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("stage update returned false")
	}
	return nil
}
