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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSystem(t *testing.T) {
	text := "UID: 1234-5678\nComputer Name: DESKTOP-AB12\nHWID: HW-0001\n" +
		"User Name: john\nIP: 1.2.3.4\nCountry: FR\nLog date: 1.1.2024 10:00:00\n"

	system, err := ParseSystem("System.txt", text)
	require.NoError(t, err)
	require.NotNil(t, system)

	assert.Equal(t, "1234-5678", *system.MachineID)
	assert.Equal(t, "DESKTOP-AB12", *system.ComputerName)
	assert.Equal(t, "HW-0001", *system.HardwareID)
	assert.Equal(t, "john", *system.MachineUser)
	assert.Equal(t, "1.2.3.4", *system.IPAddress)
	assert.Equal(t, "FR", *system.Country)
	assert.Equal(t, "1.1.2024 10:00:00", *system.LogDate)
}

func TestParseSystemIPBeatsLANIP(t *testing.T) {
	system, err := ParseSystem("System.txt", "IP: 1.2.3.4\nLANIP: 10.0.0.5\n")
	require.NoError(t, err)
	require.NotNil(t, system)
	assert.Equal(t, "1.2.3.4", *system.IPAddress)

	system, err = ParseSystem("System.txt", "LANIP: 10.0.0.5\nIP: 1.2.3.4\n")
	require.NoError(t, err)
	require.NotNil(t, system)
	assert.Equal(t, "1.2.3.4", *system.IPAddress)
}

func TestParseSystemLANIPAlone(t *testing.T) {
	system, err := ParseSystem("System.txt", "LANIP: 10.0.0.5\n")
	require.NoError(t, err)
	require.NotNil(t, system)
	assert.Equal(t, "10.0.0.5", *system.IPAddress)
}

func TestParseSystemSkipsUnrecognizedLines(t *testing.T) {
	text := "Operating System: Windows 10\nCurrent User: SYSTEM\n" +
		"Computer: DESKTOP-AB12\nInstalled Apps: 42\n"

	system, err := ParseSystem("System.txt", text)
	require.NoError(t, err)
	require.NotNil(t, system)
	assert.Equal(t, "DESKTOP-AB12", *system.ComputerName)
	assert.Nil(t, system.MachineUser)
}

func TestParseSystemEmpty(t *testing.T) {
	system, err := ParseSystem("System.txt", "nothing to see here\njust noise\n")
	require.NoError(t, err)
	assert.Nil(t, system)
}

func TestRetrieveIPOnly(t *testing.T) {
	systemData := &SystemData{}
	RetrieveIPOnly("IP: 8.8.8.8", systemData)

	require.NotNil(t, systemData.System)
	require.NotNil(t, systemData.System.IPAddress)
	assert.Equal(t, "8.8.8.8", *systemData.System.IPAddress)
}

func TestRetrieveIPOnlyKeepsOtherFields(t *testing.T) {
	systemData := &SystemData{System: &System{ComputerName: strptr("PC-1")}}
	RetrieveIPOnly("IPAddress: 8.8.4.4\n", systemData)

	assert.Equal(t, "PC-1", *systemData.System.ComputerName)
	assert.Equal(t, "8.8.4.4", *systemData.System.IPAddress)
}

func TestRetrieveIPOnlyIgnoresLANIP(t *testing.T) {
	systemData := &SystemData{}
	RetrieveIPOnly("LANIP: 10.0.0.5\n", systemData)
	assert.Nil(t, systemData.System)
}
