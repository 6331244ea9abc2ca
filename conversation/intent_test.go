package conversation

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Intent
	}{
		{msg: "I want a pizza", want: Continue},
		{msg: "pay", want: Payment},
		{msg: "PAYMENT", want: Payment},
		{msg: "Pay", want: Payment},
		{msg: "stop", want: Stop},
		{msg: "STOP", want: Stop},
		{msg: "nonstop", want: Stop},
		{msg: "stop and pay", want: Payment},
		{msg: "", want: Continue},
	}

	for _, tt := range tests {
		if got := Classify(tt.msg); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestEndsConversation(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{reply: "STOPPING CHAT - Thank you", want: true},
		{reply: "Stopping chat", want: true},
		{reply: "stop chat", want: true},
		{reply: "Chat stopping", want: true},
		{reply: "What size would you like?", want: false},
		{reply: "We never stop cooking. Chat with us!", want: false},
	}

	for _, tt := range tests {
		if got := EndsConversation(tt.reply); got != tt.want {
			t.Errorf("EndsConversation(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}
