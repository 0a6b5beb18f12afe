package cast

import (
	"errors"
	"testing"
)

func TestDescribe(t *testing.T) {
	play := PlayRequest("http://v", testDevice)
	test := TestRequest(testDevice)
	testVideo := TestVideoRequest(testDevice)
	refused := NewNetworkError("POST request failed", "h:1", errors.New("connection refused"))

	tests := []struct {
		name       string
		req        *Request
		res        *Result
		err        error
		wantStatus string
		wantToast  string
		wantOK     bool
	}{
		{
			name:       "play ok",
			req:        play,
			res:        &Result{Endpoint: EndpointPlay, StatusCode: 200, Succeeded: true, DeviceName: "Pixel Phone"},
			wantStatus: "✅ Video sent from Pixel Phone!",
			wantToast:  "✅ Video sent to PC",
			wantOK:     true,
		},
		{
			name:       "play http error",
			req:        play,
			res:        &Result{Endpoint: EndpointPlay, StatusCode: 500},
			wantStatus: "❌ Error: 500",
			wantToast:  "❌ Error: 500",
		},
		{
			name:       "play network error",
			req:        play,
			err:        refused,
			wantStatus: "❌ Error: connection refused",
			wantToast:  "❌ Error: connection refused",
		},
		{
			name:       "play validation",
			req:        play,
			err:        NewValidationError("Configure IP and port first", nil),
			wantStatus: "❌ Configure first",
			wantToast:  "Configure IP and port first",
		},
		{
			name:       "test ok",
			req:        test,
			res:        &Result{Endpoint: EndpointTest, StatusCode: 200, Succeeded: true, DeviceName: "Pixel Phone"},
			wantStatus: "✅ Test completed!\nDevice: Pixel Phone",
			wantToast:  "✅ Test successful",
			wantOK:     true,
		},
		{
			name:       "testVideo http error",
			req:        testVideo,
			res:        &Result{Endpoint: EndpointTestVideo, StatusCode: 404},
			wantStatus: "⚠️ TestVideo error: 404",
			wantToast:  "TestVideo error: 404",
		},
		{
			name:       "testVideo failed",
			req:        testVideo,
			err:        refused,
			wantStatus: "❌ TestVideo failed: connection refused",
			wantToast:  "❌ TestVideo failed: connection refused",
		},
		{
			name:      "test validation keeps status",
			req:       test,
			err:       NewValidationError("Configure IP and port first", nil),
			wantToast: "Configure IP and port first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.req, tt.res, tt.err)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Toast != tt.wantToast {
				t.Errorf("Toast = %q, want %q", got.Toast, tt.wantToast)
			}
			if got.Success != tt.wantOK {
				t.Errorf("Success = %v, want %v", got.Success, tt.wantOK)
			}
		})
	}
}

func TestPending(t *testing.T) {
	if Pending(EndpointPlay) != "📡 Sending video..." {
		t.Errorf("Pending(play) = %q", Pending(EndpointPlay))
	}
	if Pending(EndpointTestVideo) != "🎬 Testing video playback..." {
		t.Errorf("Pending(testVideo) = %q", Pending(EndpointTestVideo))
	}
}
