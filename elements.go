// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package stealerlogs

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
)

// Credential is one extracted login record. Every field is optional: stealer
// logs fill fields opportunistically and a record is never guaranteed
// complete. Unset fields serialize as null, which downstream consumers rely
// on to tell "absent" from "empty".
type Credential struct {
	Software    *string      `json:"software"`
	Host        *string      `json:"host"`
	Username    *string      `json:"username"`
	Password    *string      `json:"password"`
	Domain      *string      `json:"domain"`
	LocalPart   *string      `json:"local_part"`
	EmailDomain *string      `json:"email_domain"`
	Filepath    *string      `json:"filepath"`
	StealerName *StealerName `json:"stealer_name"`
}

// System is the identity of one compromised machine, extracted from its
// system information file.
type System struct {
	MachineID    *string `json:"machine_id"`
	ComputerName *string `json:"computer_name"`
	HardwareID   *string `json:"hardware_id"`
	MachineUser  *string `json:"machine_user"`
	IPAddress    *string `json:"ip_address"`
	Country      *string `json:"country"`
	LogDate      *string `json:"log_date"`
}

// SystemData groups everything harvested from one compromised machine
// directory: its system information, if any, and the credentials collected
// across the directory's password files.
type SystemData struct {
	System      *System       `json:"system"`
	Credentials []*Credential `json:"credentials"`
}

// AddStealerName stamps the stealer family onto every collected credential.
// It is called once the whole directory was processed, because the family is
// often detected after the password files were already parsed.
func (d *SystemData) AddStealerName(name StealerName) {
	for _, credential := range d.Credentials {
		n := name
		credential.StealerName = &n
	}
}

// Leak is the result of processing one archive. It is never shared between
// archives.
type Leak struct {
	ID          string        `json:"id"`
	Filename    string        `json:"filename"`
	ProcessedAt time.Time     `json:"processed_at"`
	SystemsData []*SystemData `json:"systems_data"`
}

// NewLeak creates an empty Leak for the given archive file name. The system
// list starts out empty, not nil, so a leak without systems still serializes
// as an array.
func NewLeak(filename string) *Leak {
	return &Leak{
		ID:          "leak--" + uuid.New().String(),
		Filename:    filename,
		ProcessedAt: time.Now().UTC(),
		SystemsData: []*SystemData{},
	}
}

var (
	normTextPattern = regexp.MustCompile(`[\[\]"']`)
	emailPattern    = regexp.MustCompile(`^\b(\S+)@(\S+\.\S+)\b`)
)

// isEmpty reports whether every field of a record is unset. Records with no
// data at all are discarded, never persisted.
func isEmpty(record interface{}) bool {
	return structs.IsZero(record)
}

// normalizeCredentialText cleans the software name: lowercase, bracket and
// quote characters stripped, underscores turned into spaces.
func normalizeCredentialText(credential *Credential) {
	if credential.Software == nil {
		return
	}

	software := normTextPattern.ReplaceAllString(strings.ToLower(*credential.Software), "")
	software = strings.ReplaceAll(software, "_", " ")
	credential.Software = &software
}

// splitCredentialEmail fills the local part and email domain when the
// username is email shaped.
func splitCredentialEmail(credential *Credential) {
	if credential.Username == nil {
		return
	}

	matched := emailPattern.FindStringSubmatch(*credential.Username)
	if matched == nil {
		return
	}

	credential.LocalPart = &matched[1]
	credential.EmailDomain = &matched[2]
}

// extractCredentialDomain derives the domain name from the host. Hosts appear
// both as full URLs and as bare "example.com" names; the latter are parsed as
// scheme relative so they still yield a domain.
func extractCredentialDomain(credential *Credential) {
	if credential.Host == nil {
		return
	}

	parsed, err := url.Parse(*credential.Host)
	if err != nil {
		return
	}

	if parsed.Hostname() == "" && parsed.Scheme == "" {
		parsed, err = url.Parse("//" + *credential.Host)
		if err != nil {
			return
		}
	}

	if hostname := parsed.Hostname(); hostname != "" {
		credential.Domain = &hostname
	}
}
