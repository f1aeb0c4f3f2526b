package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PRAETOR_TEST_MODE") == "" {
			_ = os.Setenv("PRAETOR_TEST_MODE", "1")
		}
	})
}
