package radio

import (
	"testing"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iwlistSample = `wlan0     Scan completed :
          Cell 01 - Address: 00:01:02:03:04:05
                    Channel:6
                    Frequency:2.437 GHz (Channel 6)
                    Quality=70/70  Signal level=-40 dBm  
                    Encryption key:on
                    ESSID:"MY_TARGET_SSID"
                    Mode:Master
                    IE: IEEE 802.11i/WPA2 Version 1
                        Group Cipher : CCMP
                        Pairwise Ciphers (1) : CCMP
                        Authentication Suites (1) : PSK
          Cell 02 - Address: 3C:84:6A:11:22:33
                    Channel:1
                    Frequency:2.412 GHz (Channel 1)
                    Quality=43/70  Signal level=-67 dBm  
                    Encryption key:off
                    ESSID:"coffee-shop"
                    Mode:Master
          Cell 03 - Address: A4:2B:B0:DE:AD:01
                    Channel:36
                    Frequency:5.18 GHz (Channel 36)
                    Quality=55/70  Signal level=-55 dBm  
                    Encryption key:on
                    ESSID:"mixed-legacy"
                    Mode:Master
                    IE: IEEE 802.11i/WPA2 Version 1
                        Group Cipher : TKIP
                        Pairwise Ciphers (2) : CCMP TKIP
                        Authentication Suites (1) : PSK
                    IE: WPA Version 1
                        Group Cipher : TKIP
                        Pairwise Ciphers (2) : CCMP TKIP
                        Authentication Suites (1) : PSK
          Cell 04 - Address: 00:1A:1E:00:10:20
                    Channel:44
                    Frequency:5.22 GHz (Channel 44)
                    Quality=38/70  Signal level=-72 dBm  
                    Encryption key:on
                    ESSID:"corp-wlan"
                    Mode:Master
                    IE: IEEE 802.11i/WPA2 Version 1
                        Group Cipher : CCMP
                        Pairwise Ciphers (1) : CCMP
                        Authentication Suites (1) : 802.1x
          Cell 05 - Address: 00:1A:1E:00:60:01
                    Channel:37
                    Frequency:6.135 GHz
                    Quality=49/70
                    Encryption key:on
                    ESSID:""
                    Mode:Master
                    IE: IEEE 802.11i/WPA2 Version 1
                        Group Cipher : CCMP
                        Pairwise Ciphers (1) : CCMP
                        Authentication Suites (1) : SAE
          Cell 06 - Address: 12:34:56:78:9A:BC
                    Channel:11
                    Frequency:2.462 GHz (Channel 11)
                    Quality=20/70  Signal level=-90 dBm  
                    Encryption key:on
                    ESSID:"old-router"
                    Mode:Master
`

func TestParseIWListOutput(t *testing.T) {
	networks := parseIWListOutput(iwlistSample)
	require.Len(t, networks, 6)

	first := networks[0]
	assert.Equal(t, "MY_TARGET_SSID", first.SSID)
	assert.Equal(t, wifiscand.MAC{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, first.BSSID)
	assert.Equal(t, uint8(6), first.Channel)
	assert.Equal(t, uint32(2437), first.Frequency)
	assert.Equal(t, wifiscand.Band2_4GHz, first.Band)
	assert.Equal(t, int16(-40), first.RSSI)
	assert.Equal(t, wifiscand.SecurityWPA2AESPSK, first.Security)

	assert.Equal(t, wifiscand.SecurityOpen, networks[1].Security)

	assert.Equal(t, wifiscand.Band5GHz, networks[2].Band)
	assert.Equal(t, wifiscand.SecurityWPA2WPAMixedPSK, networks[2].Security)

	assert.Equal(t, wifiscand.SecurityWPA2AESEnt, networks[3].Security)

	hidden := networks[4]
	assert.Equal(t, "", hidden.SSID)
	assert.Equal(t, wifiscand.Band6GHz, hidden.Band)
	assert.Equal(t, wifiscand.SecurityWPA3SAE, hidden.Security)
	assert.Equal(t, int16(-100+(70*49)/70), hidden.RSSI)

	assert.Equal(t, wifiscand.SecurityWEPPSK, networks[5].Security)
}

func TestParseIWListOutputEmpty(t *testing.T) {
	assert.Empty(t, parseIWListOutput("wlan0     No scan results\n"))
}

func TestClassifySecurity(t *testing.T) {
	wpaOnly := `IE: WPA Version 1
                        Pairwise Ciphers (1) : TKIP
                        Authentication Suites (1) : PSK`
	assert.Equal(t, wifiscand.SecurityWPATKIPPSK, classifySecurity(wpaOnly, true, false))

	wpaEnt := `IE: WPA Version 1
                        Pairwise Ciphers (1) : CCMP
                        Authentication Suites (1) : 802.1x`
	assert.Equal(t, wifiscand.SecurityWPAAESEnt, classifySecurity(wpaEnt, true, false))

	transition := `IE: IEEE 802.11i/WPA2 Version 1
                        Pairwise Ciphers (1) : CCMP
                        Authentication Suites (2) : PSK SAE`
	assert.Equal(t, wifiscand.SecurityWPA3WPA2PSK, classifySecurity(transition, true, false))

	assert.Equal(t, wifiscand.SecurityIBSSOpen, classifySecurity("", false, true))
}

func TestParseIWListOutputAdHoc(t *testing.T) {
	const adhoc = `wlan0     Scan completed :
          Cell 01 - Address: 02:11:22:33:44:55
                    Channel:11
                    Frequency:2.462 GHz (Channel 11)
                    Quality=60/70  Signal level=-50 dBm  
                    Encryption key:off
                    ESSID:"field-kit"
                    Mode:Ad-Hoc
          Cell 02 - Address: 02:11:22:33:44:56
                    Channel:11
                    Frequency:2.462 GHz (Channel 11)
                    Quality=60/70  Signal level=-52 dBm  
                    Encryption key:off
                    ESSID:"field-ap"
                    Mode:Master
`
	networks := parseIWListOutput(adhoc)
	require.Len(t, networks, 2)
	assert.Equal(t, wifiscand.SecurityIBSSOpen, networks[0].Security)
	assert.Equal(t, "IBSS-OPEN", networks[0].Security.String())
	assert.Equal(t, wifiscand.SecurityOpen, networks[1].Security)
}
