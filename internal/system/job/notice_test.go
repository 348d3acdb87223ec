// Released under an MIT license. See LICENSE.

package job

import "testing"

func TestNoticeLayout(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		mark     byte
		status   string
		line     string
		expected string
	}{
		{
			name:     "stopped",
			id:       1,
			mark:     '+',
			status:   "Stopped",
			line:     "sleep 100",
			expected: "[1]+  Stopped                 sleep 100\n",
		},
		{
			name:     "done",
			id:       1,
			mark:     '+',
			status:   "Done",
			line:     "sleep 100 &",
			expected: "[1]+  Done                    sleep 100 &\n",
		},
		{
			name:     "terminated",
			id:       2,
			mark:     '-',
			status:   "Terminated",
			line:     "cat",
			expected: "[2]-  Terminated              cat\n",
		},
		{
			name:     "unmarked running",
			id:       3,
			mark:     ' ',
			status:   "Running",
			line:     "sleep 1 &",
			expected: "[3]   Running                 sleep 1 &\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notice(tt.id, tt.mark, tt.status, tt.line); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
