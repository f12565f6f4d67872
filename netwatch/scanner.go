/*
 * MIT License
 *
 * Copyright (c) 2026 fengmingdev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package netwatch

import (
	"strings"

	gnet "github.com/shirou/gopsutil/v3/net"
)

type gopsutilScanner struct{}

// NewGopsutilScanner returns a Scanner backed by gopsutil/v3/net, the
// cross-platform interface-enumeration dependency named in this module's
// domain stack.
func NewGopsutilScanner() Scanner { return gopsutilScanner{} }

func (gopsutilScanner) Scan() ([]Interface, error) {
	stats, err := gnet.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(stats))
	for _, s := range stats {
		up := false
		for _, f := range s.Flags {
			if strings.EqualFold(f, "up") {
				up = true
				break
			}
		}
		out = append(out, Interface{
			Name: s.Name,
			Kind: classifyKind(s.Name, s.Flags),
			Up:   up,
		})
	}
	return out, nil
}

// classifyKind guesses an interface's Kind from its conventional OS
// naming, since gopsutil's InterfaceStat carries a name and flags but no
// explicit medium. The prefixes below cover Linux (eth/en/wlan/wlp/ww),
// Windows adapter aliases, and BSD/Darwin (en for both Ethernet and
// Wi-Fi, so Wi-Fi is distinguished by the wl-prefixed Linux convention
// only - Darwin's "en0 is Wi-Fi on a laptop" ambiguity is a known
// limitation, not a bug to silently paper over).
func classifyKind(name string, flags []string) Kind {
	lower := strings.ToLower(name)

	for _, f := range flags {
		if strings.EqualFold(f, "loopback") {
			return KindLoopback
		}
	}
	if lower == "lo" || strings.HasPrefix(lower, "lo0") {
		return KindLoopback
	}

	switch {
	case strings.HasPrefix(lower, "wl"), strings.HasPrefix(lower, "wifi"),
		strings.HasPrefix(lower, "wi-fi"):
		return KindWiFi
	case strings.HasPrefix(lower, "ww"), strings.HasPrefix(lower, "rmnet"),
		strings.HasPrefix(lower, "pdp"), strings.HasPrefix(lower, "ppp"):
		return KindCellular
	case strings.HasPrefix(lower, "eth"), strings.HasPrefix(lower, "en"):
		return KindEthernet
	default:
		return KindOther
	}
}
