package blob

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-kit/log"

	"github.com/arloliu/lerc/compress"
	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/internal/options"
	"github.com/arloliu/lerc/native"
)

// Limits applied unless overridden.
const (
	// DefaultMaxBlobSize is the largest blob the codec API can address.
	DefaultMaxBlobSize = math.MaxUint32
	// DefaultMaxValues bounds cols*rows*values_per_pixel*bands of one raster.
	DefaultMaxValues = 1 << 30
)

// Config holds the settings shared by Decoder and Encoder.
//
// Options that concern only one side are ignored by the other:
// WithInspectCache by encoders, WithDataType by decoders.
type Config struct {
	lib         native.Library
	logger      log.Logger
	metrics     *native.Metrics
	serialize   bool
	compression format.CompressionType
	codec       compress.Codec
	maxBlobSize int64
	maxValues   int64
	cacheSize   int
	dataType    format.DataType
}

// Option configures a Decoder or Encoder.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:      log.NewNopLogger(),
		compression: format.CompressionNone,
		maxBlobSize: DefaultMaxBlobSize,
		maxValues:   DefaultMaxValues,
		dataType:    format.DataTypeFloat,
	}

	if err := options.ApplyAndValidate(cfg, (*Config).validate, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.lib == nil {
		c.lib = defaultLibrary()
	}

	codec, err := compress.CreateCodec(c.compression, "blob")
	if err != nil {
		return err
	}
	c.codec = codec

	return nil
}

// library returns the configured library with its wrappers applied.
func (c *Config) library() native.Library {
	lib := c.lib
	if c.serialize {
		lib = native.Serialize(lib)
	}

	return native.Instrument(lib, c.metrics)
}

// WithLibrary sets the codec library. The default is liblerc when built with
// cgo and the lerc tag, and the pure-Go lerc2 codec otherwise.
func WithLibrary(lib native.Library) Option {
	return options.New(func(c *Config) error {
		if lib == nil {
			return errors.New("library must not be nil")
		}
		c.lib = lib

		return nil
	})
}

// WithLogger sets the logger used for debug output. The default discards logs.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		c.logger = logger
	})
}

// WithMetrics records every library call in m.
func WithMetrics(m *native.Metrics) Option {
	return options.NoError(func(c *Config) {
		c.metrics = m
	})
}

// WithSerializedCalls runs every library call under one process-wide lock.
//
// Use it with codec builds that keep global state; liblerc releases checked so
// far are re-entrant and do not need it.
func WithSerializedCalls() Option {
	return options.NoError(func(c *Config) {
		c.serialize = true
	})
}

// WithCompression sets the outer codec wrapped around blobs: decoders unwrap
// it before inspection and encoders apply it after encoding.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2,
			format.CompressionLZ4, format.CompressionDeflate:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("invalid blob compression: %v", comp)
		}
	})
}

// WithMaxBlobSize rejects blobs longer than n bytes before any library call.
func WithMaxBlobSize(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 || n > DefaultMaxBlobSize {
			return fmt.Errorf("max blob size must be in (0, %d]: %d", int64(DefaultMaxBlobSize), n)
		}
		c.maxBlobSize = n

		return nil
	})
}

// WithMaxPixels bounds cols*rows*values_per_pixel*bands of any raster the
// decoder inspects or the encoder accepts.
func WithMaxPixels(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("max pixels must be positive: %d", n)
		}
		c.maxValues = n

		return nil
	})
}

// WithInspectCache keeps the metadata of the last n inspected blobs, keyed by
// content fingerprint. n == 0 disables the cache.
func WithInspectCache(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("inspect cache size must not be negative: %d", n)
		}
		c.cacheSize = n

		return nil
	})
}

// WithDataType sets the element type the encoder stores values as. The
// default is format.DataTypeFloat.
func WithDataType(dt format.DataType) Option {
	return options.New(func(c *Config) error {
		if !dt.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnsupportedDataType, uint32(dt))
		}
		c.dataType = dt

		return nil
	})
}
