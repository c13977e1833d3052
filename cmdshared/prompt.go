package cmdshared

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ReadValue prompts for a line of input, returning defaultValue when the
// answer is empty. In non-interactive mode the default is used without
// reading anything.
func ReadValue(prompt string, defaultValue string) string {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Println(defaultValue + " (non-interactive mode)")
		return defaultValue
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Printf("Failed to prompt user: %v\n", err)
		os.Exit(1)
	}

	answer = strings.TrimSpace(answer)
	if len(answer) == 0 {
		return defaultValue
	}
	return answer
}
