// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metric

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoOp(t *testing.T) {
	require.NoError(t, Init(""))
	Gauge(GameScore, 1, []string{Tag(TagGame, "g")})
	Incr(TableResizes, nil)
	require.NoError(t, Close())
}

func TestStatsd(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Init(conn.LocalAddr().String()))
	defer func() { require.NoError(t, Init("")) }()

	Gauge(GameScore, 70, []string{Tag(TagGame, "game0.txt")})
	require.NoError(t, Close())

	// The client may batch several metrics, including its own telemetry,
	// into each packet.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 64<<10)
	for {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		if strings.Contains(string(buf[:n]), "wordgame.score:70|g|#game:game0.txt") {
			return
		}
	}
}
