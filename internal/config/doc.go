// Package config loads livetree project configuration.
//
// Configuration lives in livetree.json, or livetree.yaml / livetree.yml,
// at the project root. JSON is preferred when several exist.
//
// # Configuration File Structure
//
//	{
//	  "name": "todo",
//	  "logLevel": "info",
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "journal": {
//	    "path": "livetree.db",
//	    "record": true
//	  },
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "bucket": "my-bucket",
//	    "prefix": "todo/",
//	    "region": "eu-west-1"
//	  },
//	  "metrics": {
//	    "namespace": "livetree",
//	    "enabled": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.Addr())
package config
