/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import "encoding/json"

// Server is one entry of the admin host registry
type Server struct {
	Name                         string `json:"Name"`
	IPAddress                    string `json:"IPAddress"`
	IPv6Address                  string `json:"IPv6Address"`
	PortNumber                   int    `json:"PortNumber"`
	ClientMessagePortNumber      int    `json:"ClientMessagePortNumber"`
	HTTPPortNumber               int    `json:"HTTPPortNumber"`
	UsingSSL                     bool   `json:"UsingSSL"`
	AcceptingClients             bool   `json:"AcceptingClients"`
	SelfRegistered               bool   `json:"SelfRegistered"`
	Host                         string `json:"Host"`
	IsLocal                      bool   `json:"IsLocal"`
	SSLCertificateID             string `json:"SSLCertificateID"`
	SSLCertificateAuthority      string `json:"SSLCertificateAuthority"`
	SSLCertificateRevocationList string `json:"SSLCertificateRevocationList"`
	ClientExportSSLSvrKeyID      string `json:"ClientExportSSLSvrKeyID"`
	ClientExportSSLSvrCert       string `json:"ClientExportSSLSvrCert"`
	LastUpdated                  string `json:"LastUpdated"`
}

// ServersFromJSON parses the registry listing of the admin host
func ServersFromJSON(data []byte) ([]Server, error) {
	var payload struct {
		Value []Server `json:"value"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload.Value, nil
}
