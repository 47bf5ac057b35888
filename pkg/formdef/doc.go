// Package formdef loads form definitions from JSON or YAML files. A document
// maps form ids to their fields:
//
//	forms:
//	  login:
//	    endpoint: /auth/login
//	    method: POST
//	    fields:
//	      - name: email
//	        label: Email
//	        format: email
//	        required: true
//	      - name: password
//	        format: password
//	        required: true
//	        validations:
//	          - kind: minLength
//	            params: {value: "8"}
package formdef
